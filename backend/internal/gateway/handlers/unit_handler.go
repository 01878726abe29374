// ============================================================================
// backend/internal/gateway/handlers/unit_handler.go
// Unit structure endpoints
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

// UnitHandler serves unit listing and structural mutations.
type UnitHandler struct {
	Store    store.Store
	Registry *registry.Service
}

// RESTCreateUnitRequest mirrors the JSON input for POST /units
type RESTCreateUnitRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	CourseCode  string `json:"course_code" validate:"required"`
	Description string `json:"description"`
	CurrentWeek int32  `json:"current_week" validate:"gte=0,lte=4"`
	TeacherID   string `json:"teacher_id"`
}

// RESTUpdateUnitRequest mirrors the JSON input for PUT /units/{code}.
// OldTeacherID and TeacherID describe the teacher delta; both empty means
// the teacher assignment is untouched.
type RESTUpdateUnitRequest struct {
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	CourseCode   string `json:"course_code"`
	Description  string `json:"description"`
	CurrentWeek  int32  `json:"current_week" validate:"gte=0,lte=4"`
	OldTeacherID string `json:"old_teacher_id"`
	TeacherID    string `json:"teacher_id"`
}

// ListUnits handles GET /units
// Query Params: course_code (optional)
func (h *UnitHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.Store.LoadUnits(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	if courseCode := r.URL.Query().Get("course_code"); courseCode != "" {
		filtered := make([]shared.Unit, 0, len(units))
		for _, u := range units {
			if u.CourseCode == courseCode {
				filtered = append(filtered, u)
			}
		}
		units = filtered
	}

	util.WriteJSON(w, http.StatusOK, units)
}

// CreateUnit handles POST /units
func (h *UnitHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req RESTCreateUnitRequest
	if err := decodeAndValidate(r, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	unit := shared.Unit{
		Code:        req.Code,
		Name:        req.Name,
		CourseCode:  req.CourseCode,
		Description: req.Description,
		CurrentWeek: req.CurrentWeek,
	}
	if err := h.Registry.AddUnit(r.Context(), unit, req.TeacherID); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, unit)
}

// UpdateUnit handles PUT /units/{code}
// Replaces the unit record, propagating a code change into the parent
// course's unit list and every teacher's units-teached list, then applies
// the teacher delta.
func (h *UnitHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	oldCode := chi.URLParam(r, "code")

	var req RESTUpdateUnitRequest
	if err := decodeAndValidate(r, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	unit := shared.Unit{
		Code:        req.Code,
		Name:        req.Name,
		CourseCode:  req.CourseCode,
		Description: req.Description,
		CurrentWeek: req.CurrentWeek,
	}
	if err := h.Registry.RenameUnit(r.Context(), oldCode, unit); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	// RenameUnit already rewrote a code change into teacher lists, so the
	// teacher delta applies under the new code.
	if err := h.Registry.ChangeUnitTeacher(r.Context(), req.Code, req.Code, req.OldTeacherID, req.TeacherID); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, unit)
}

// DeleteUnit handles DELETE /units/{code}
func (h *UnitHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.Registry.DeleteUnit(r.Context(), code); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "unit deleted",
	})
}
