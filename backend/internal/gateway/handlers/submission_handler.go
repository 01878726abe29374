// ============================================================================
// backend/internal/gateway/handlers/submission_handler.go
// Submission and progress endpoints
// ============================================================================

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"uniportal/backend/internal/gateway/util"
	"uniportal/backend/internal/query"
	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
	"uniportal/backend/internal/submission"
)

// SubmissionHandler serves submission lifecycle and progress endpoints.
type SubmissionHandler struct {
	Store      store.Store
	Submission *submission.Service
}

// RESTSaveSubmissionRequest mirrors the JSON input for POST /submissions.
// Submit=false saves a draft, Submit=true finalizes it.
type RESTSaveSubmissionRequest struct {
	StudentID      string `json:"student_id" validate:"required"`
	AssignmentID   string `json:"assignment_id" validate:"required"`
	SubmissionName string `json:"submission_name"`
	Submit         bool   `json:"submit"`
}

// RESTGradeSubmissionRequest mirrors the JSON input for POST /submissions/{id}/grade
type RESTGradeSubmissionRequest struct {
	Grade   float64 `json:"grade"`
	Comment string  `json:"comment"`
}

// RESTSetWeekMaterialRequest mirrors the JSON input for POST /progress
type RESTSetWeekMaterialRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	UnitCode  string `json:"unit_code" validate:"required"`
	Week      int    `json:"week" validate:"required"`
	State     string `json:"state" validate:"required"`
}

// SaveSubmission handles POST /submissions
// Creates or replaces the student's submission for the assignment. Grades and
// comments already recorded on an existing record survive a re-save; a final
// submit stamps the submission time.
func (h *SubmissionHandler) SaveSubmission(w http.ResponseWriter, r *http.Request) {
	var req RESTSaveSubmissionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	// 1. Look up the existing record so identity and grading data carry over
	existing, err := h.Submission.FindForAssignmentsAndStudent(r.Context(), []string{req.AssignmentID}, req.StudentID)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	record := shared.StudentSubmission{
		SubmissionID:     uuid.NewString(),
		StudentID:        req.StudentID,
		AssignmentID:     req.AssignmentID,
		SubmissionStatus: shared.SubmissionDraft,
		SubmissionName:   req.SubmissionName,
	}
	if len(existing) > 0 {
		prev := existing[0]
		record.SubmissionID = prev.SubmissionID
		record.Grade = prev.Grade
		record.Comment = prev.Comment
		record.GradedBy = prev.GradedBy
		record.SubmittedAt = prev.SubmittedAt
	}

	// 2. Finalize if this save is the actual submit
	if req.Submit {
		record.SubmissionStatus = shared.SubmissionSubmitted
		record.SubmittedAt = time.Now()
	}

	result, err := h.Submission.Upsert(r.Context(), record)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if result.Action == submission.ActionCreated {
		status = http.StatusCreated
	}
	util.WriteJSON(w, status, result)
}

// GradeSubmission handles POST /submissions/{id}/grade
func (h *SubmissionHandler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "id")

	var req RESTGradeSubmissionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	// Grader identity comes from the authenticated token, not the body
	gradedBy := ""
	if claims, ok := ClaimsFromRequest(r); ok {
		gradedBy = claims.UserID
	}

	graded, err := h.Submission.Grade(r.Context(), submissionID, req.Grade, req.Comment, gradedBy)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, graded)
}

// ListSubmissions handles GET /submissions
// Query Params: assignment_ids (comma separated, required), student_id (optional)
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	assignmentIDs := query.SplitCodes(r.URL.Query().Get("assignment_ids"))
	if len(assignmentIDs) == 0 {
		util.WriteJSONError(w, http.StatusBadRequest, "assignment_ids is required")
		return
	}
	studentID := r.URL.Query().Get("student_id")

	matched, err := h.Submission.FindForAssignmentsAndStudent(r.Context(), assignmentIDs, studentID)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, matched)
}

// SetWeekMaterial handles POST /progress
func (h *SubmissionHandler) SetWeekMaterial(w http.ResponseWriter, r *http.Request) {
	var req RESTSetWeekMaterialRequest
	if err := decodeAndValidate(r, &req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	updated, err := h.Submission.SetWeekMaterial(r.Context(), req.StudentID, req.UnitCode, req.Week, req.State)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, updated)
}

// EnrolledUnits handles GET /students/{id}/units
// Derives the unit codes a student appears in from their submissions.
func (h *SubmissionHandler) EnrolledUnits(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "id")

	submissions, err := h.Store.LoadSubmissions(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}
	assignments, err := h.Store.LoadAssignments(r.Context())
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"student_id": studentID,
		"unit_codes": query.EnrolledUnits(submissions, assignments, studentID),
	})
}
