// ============================================================================
// backend/internal/gateway/handlers/course_handler.go
// Course structure endpoints
// ============================================================================

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"uniportal/backend/internal/gateway/util"
	"uniportal/backend/internal/registry"
	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

// CourseHandler serves course listing and structural mutations.
type CourseHandler struct {
	Store    store.Store
	Registry *registry.Service
}

// RESTCreateCourseRequest mirrors the JSON input for POST /courses
type RESTCreateCourseRequest struct {
	Code      string `json:"code" validate:"required"`
	Name      string `json:"name" validate:"required"`
	ManagedBy string `json:"managed_by" validate:"required"`
}

// ListCourses handles GET /courses
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Store.LoadCourses(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{code}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	courses, err := h.Store.LoadCourses(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	for _, c := range courses {
		if c.Code == code {
			util.WriteJSON(w, http.StatusOK, c)
			return
		}
	}
	util.WriteJSONError(w, http.StatusNotFound, "course not found: "+code)
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req RESTCreateCourseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	course := shared.Course{Code: req.Code, Name: req.Name}
	if err := h.Registry.AddCourse(r.Context(), course, req.ManagedBy); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, course)
}

// DeleteCourse handles DELETE /courses/{code}
// Cascades to the course's units and coordinator references.
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.Registry.DeleteCourse(r.Context(), code); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "course deleted",
	})
}
