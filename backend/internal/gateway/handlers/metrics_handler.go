// ============================================================================
// backend/internal/gateway/handlers/metrics_handler.go
// Derived metrics endpoints
// ============================================================================

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"uniportal/backend/internal/gateway/util"
	"uniportal/backend/internal/metrics"
	"uniportal/backend/internal/query"
	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

// MetricsHandler serves aggregate numbers computed from raw records.
type MetricsHandler struct {
	Store store.Store
}

// UnitProgress handles GET /metrics/units/{code}/progress
// Query Params: student_id (required)
func (h *MetricsHandler) UnitProgress(w http.ResponseWriter, r *http.Request) {
	unitCode := chi.URLParam(r, "code")
	studentID := r.URL.Query().Get("student_id")
	if studentID == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "student_id is required")
		return
	}

	progress, err := h.Store.LoadProgress(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	assignments, err := h.Store.LoadAssignments(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	// A student with no progress record yet still gets a percentage; the
	// zero-value record has every week NOT_DONE by construction.
	record := shared.StudentProgress{StudentID: studentID, UnitCode: unitCode}
	for _, p := range progress {
		if p.StudentID == studentID && p.UnitCode == unitCode {
			record = p
			break
		}
	}

	unitAssignments := query.FilterAssignments(assignments, query.AssignmentByUnitCodes([]string{unitCode}))
	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"student_id": studentID,
		"unit_code":  unitCode,
		"progress":   metrics.UnitProgressPercentage(record, unitAssignments),
	})
}

// AverageProgress handles GET /metrics/average-progress
// Query Params: student_id (optional), unit_codes (comma separated, optional)
func (h *MetricsHandler) AverageProgress(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("student_id")
	unitCodes := query.SplitCodes(r.URL.Query().Get("unit_codes"))

	progress, err := h.Store.LoadProgress(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	assignments, err := h.Store.LoadAssignments(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	wanted := make(map[string]bool, len(unitCodes))
	for _, code := range unitCodes {
		wanted[code] = true
	}

	cohort := make([]shared.StudentProgress, 0, len(progress))
	for _, p := range progress {
		if studentID != "" && p.StudentID != studentID {
			continue
		}
		if len(wanted) > 0 && !wanted[p.UnitCode] {
			continue
		}
		cohort = append(cohort, p)
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"average_progress": metrics.AverageProgress(cohort, assignments),
	})
}

// AverageGrade handles GET /metrics/average-grade
// Query Params: student_id (optional), assignment_ids (comma separated,
// optional), policy (optional, "zero" counts ungraded submissions as zeros)
func (h *MetricsHandler) AverageGrade(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.Store.LoadSubmissions(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	var predicates []query.SubmissionPredicate
	if studentID := r.URL.Query().Get("student_id"); studentID != "" {
		predicates = append(predicates, query.SubmissionByStudent(studentID))
	}
	if ids := query.SplitCodes(r.URL.Query().Get("assignment_ids")); len(ids) > 0 {
		predicates = append(predicates, query.SubmissionByAssignments(ids))
	}
	cohort := query.FilterSubmissions(submissions, predicates...)

	policy := metrics.ExcludeUngraded
	if r.URL.Query().Get("policy") == "zero" {
		policy = metrics.TreatUngradedAsZero
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"average_grade": metrics.AverageGrade(cohort, policy),
	})
}

// SubmissionRate handles GET /metrics/submission-rate
func (h *MetricsHandler) SubmissionRate(w http.ResponseWriter, r *http.Request) {
	students, err := h.Store.LoadStudents(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	assignments, err := h.Store.LoadAssignments(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	submissions, err := h.Store.LoadSubmissions(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"submission_rate": metrics.SubmissionRate(students, assignments, submissions),
	})
}

// Dashboard handles GET /metrics/dashboard
func (h *MetricsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	students, err := h.Store.LoadStudents(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	courses, err := h.Store.LoadCourses(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	units, err := h.Store.LoadUnits(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	assignments, err := h.Store.LoadAssignments(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	submissions, err := h.Store.LoadSubmissions(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	stats := metrics.ComputeDashboardStats(students, courses, units, assignments, submissions)
	util.WriteJSON(w, http.StatusOK, stats)
}
