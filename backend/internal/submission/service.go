// ============================================================================
// backend/internal/submission/service.go
// Submission lifecycle manager
// ============================================================================

// Package submission owns the student work records: assignment submissions
// and weekly-material progress. Upsert is the sole write path for
// submissions, which keeps duplicate detection for the (student, assignment)
// identity in one place.
package submission

import (
	"context"

	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

// Action values reported by Upsert.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// GradedByDefault is recorded when a grader identity is not supplied.
const GradedByDefault = "coordinator"

// UpsertResult reports what Upsert did and the record as stored.
type UpsertResult struct {
	Action string                   `json:"action"`
	Record shared.StudentSubmission `json:"record"`
}

// Service applies lifecycle operations to student submissions and progress.
type Service struct {
	store store.Store
}

// NewService creates a submission Service over the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// ============================================================================
// Submission Operations
// ============================================================================

// statusRank orders the forward-only lifecycle EMPTY -> DRAFT -> SUBMITTED.
// UNSUBMITTED is terminal and sits outside the ordering.
var statusRank = map[string]int{
	shared.SubmissionEmpty:     0,
	shared.SubmissionDraft:     1,
	shared.SubmissionSubmitted: 2,
}

// checkTransition rejects any status change that would move a record
// backward. Re-saving at the same rank (DRAFT -> DRAFT, SUBMITTED ->
// SUBMITTED) is allowed; an UNSUBMITTED record is frozen.
func checkTransition(from, to string) error {
	if from == shared.SubmissionUnsubmitted {
		return shared.NewValidationError("submission_status", "record is UNSUBMITTED and cannot be changed")
	}
	if to == shared.SubmissionUnsubmitted {
		return shared.NewValidationError("submission_status", "UNSUBMITTED is stamped externally, not submitted")
	}
	if statusRank[to] < statusRank[from] {
		return shared.NewValidationError("submission_status", "cannot move backward from "+from)
	}
	return nil
}

// Upsert creates or replaces the submission identified by the record's
// (StudentID, AssignmentID) pair. An existing record is replaced in place;
// keeping SubmissionID stable across updates is the caller's responsibility,
// the service does not invent identity. Both draft saves and final submits
// come through here with different SubmissionStatus values; a save that
// would move the status backward fails with ValidationError.
func (s *Service) Upsert(ctx context.Context, record shared.StudentSubmission) (*UpsertResult, error) {
	if record.StudentID == "" {
		return nil, shared.NewValidationError("student_id", "student id is required")
	}
	if record.AssignmentID == "" {
		return nil, shared.NewValidationError("assignment_id", "assignment id is required")
	}

	submissions, err := s.store.LoadSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	action := ActionCreated
	idx := -1
	for i, sub := range submissions {
		if sub.StudentID == record.StudentID && sub.AssignmentID == record.AssignmentID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		if err := checkTransition(submissions[idx].SubmissionStatus, record.SubmissionStatus); err != nil {
			return nil, err
		}
		action = ActionUpdated
		submissions[idx] = record
	} else {
		submissions = append(submissions, record)
	}

	if err := s.store.SaveSubmissions(ctx, submissions); err != nil {
		return nil, err
	}

	return &UpsertResult{Action: action, Record: record}, nil
}

// Grade records a grade on an existing submission. The grade must be within
// [0,100]. An omitted comment keeps the existing one, and an omitted grader
// identity defaults to "coordinator". SubmissionStatus is left untouched;
// grading a record that has not been submitted yet is permitted.
func (s *Service) Grade(ctx context.Context, submissionID string, grade float64, comment, gradedBy string) (*shared.StudentSubmission, error) {
	if grade < 0 || grade > 100 {
		return nil, shared.NewValidationError("grade", "must be between 0 and 100")
	}

	submissions, err := s.store.LoadSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, sub := range submissions {
		if sub.SubmissionID == submissionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, shared.NewNotFoundError("submission", submissionID)
	}

	submissions[idx].Grade = &grade
	if comment != "" {
		submissions[idx].Comment = comment
	}
	if gradedBy != "" {
		submissions[idx].GradedBy = gradedBy
	} else {
		submissions[idx].GradedBy = GradedByDefault
	}

	if err := s.store.SaveSubmissions(ctx, submissions); err != nil {
		return nil, err
	}

	graded := submissions[idx]
	return &graded, nil
}

// FindForAssignmentsAndStudent returns submissions restricted to the given
// assignment id set, further restricted to a single student when studentID is
// non-empty. Used for "has this student submitted" views without leaking
// unrelated records.
func (s *Service) FindForAssignmentsAndStudent(ctx context.Context, assignmentIDs []string, studentID string) ([]shared.StudentSubmission, error) {
	submissions, err := s.store.LoadSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(assignmentIDs))
	for _, id := range assignmentIDs {
		wanted[id] = true
	}

	matched := make([]shared.StudentSubmission, 0, len(submissions))
	for _, sub := range submissions {
		if !wanted[sub.AssignmentID] {
			continue
		}
		if studentID != "" && sub.StudentID != studentID {
			continue
		}
		matched = append(matched, sub)
	}

	return matched, nil
}

// ============================================================================
// Progress Operations
// ============================================================================

// SetWeekMaterial records a weekly material state on a (student, unit)
// progress record, creating the record if it does not exist yet. The week
// must be within [1,4] and the state one of DONE / NOT_DONE.
func (s *Service) SetWeekMaterial(ctx context.Context, studentID, unitCode string, week int, state string) (*shared.StudentProgress, error) {
	if week < 1 || week > shared.WeeksPerUnit {
		return nil, shared.NewValidationError("week", "must be between 1 and 4")
	}
	if state != shared.MaterialDone && state != shared.MaterialNotDone {
		return nil, shared.NewValidationError("state", "must be DONE or NOT_DONE")
	}

	progress, err := s.store.LoadProgress(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, p := range progress {
		if p.StudentID == studentID && p.UnitCode == unitCode {
			idx = i
			break
		}
	}
	if idx < 0 {
		progress = append(progress, shared.StudentProgress{
			StudentID:     studentID,
			UnitCode:      unitCode,
			Week1Material: shared.MaterialNotDone,
			Week2Material: shared.MaterialNotDone,
			Week3Material: shared.MaterialNotDone,
			Week4Material: shared.MaterialNotDone,
		})
		idx = len(progress) - 1
	}

	progress[idx].SetWeekMaterial(week, state)

	if err := s.store.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}

	updated := progress[idx]
	return &updated, nil
}
