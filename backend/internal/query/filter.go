// ============================================================================
// backend/internal/query/filter.go
// Composable record filters
// ============================================================================

// Package query provides composable predicates over assignments and
// submissions. Filters compose by sequential AND, so the order of
// application never changes the result set.
package query

import (
	"strings"

	"uniportal/backend/internal/shared"
)

// AssignmentPredicate reports whether an assignment matches.
type AssignmentPredicate func(shared.Assignment) bool

// SubmissionPredicate reports whether a submission matches.
type SubmissionPredicate func(shared.StudentSubmission) bool

// ============================================================================
// Assignment Predicates
// ============================================================================

// AssignmentByID matches a single assignment id.
func AssignmentByID(id string) AssignmentPredicate {
	return func(a shared.Assignment) bool { return a.ID == id }
}

// AssignmentByIDs matches any of the given assignment ids.
func AssignmentByIDs(ids []string) AssignmentPredicate {
	set := toSet(ids)
	return func(a shared.Assignment) bool { return set[a.ID] }
}

// AssignmentByUnitCodes matches assignments belonging to any of the given
// unit codes.
func AssignmentByUnitCodes(codes []string) AssignmentPredicate {
	set := toSet(codes)
	return func(a shared.Assignment) bool { return set[a.UnitCode] }
}

// AssignmentByStatus matches assignments with the given status (OPEN/CLOSED).
func AssignmentByStatus(status string) AssignmentPredicate {
	return func(a shared.Assignment) bool { return a.Status == status }
}

// FilterAssignments returns the assignments matching every predicate.
func FilterAssignments(assignments []shared.Assignment, predicates ...AssignmentPredicate) []shared.Assignment {
	out := make([]shared.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if matchesAssignment(a, predicates) {
			out = append(out, a)
		}
	}
	return out
}

func matchesAssignment(a shared.Assignment, predicates []AssignmentPredicate) bool {
	for _, p := range predicates {
		if !p(a) {
			return false
		}
	}
	return true
}

// ============================================================================
// Submission Predicates
// ============================================================================

// SubmissionByStudent matches submissions of a single student.
func SubmissionByStudent(studentID string) SubmissionPredicate {
	return func(s shared.StudentSubmission) bool { return s.StudentID == studentID }
}

// SubmissionByAssignments matches submissions against any of the given
// assignment ids.
func SubmissionByAssignments(ids []string) SubmissionPredicate {
	set := toSet(ids)
	return func(s shared.StudentSubmission) bool { return set[s.AssignmentID] }
}

// SubmissionByStatus matches submissions with the given lifecycle status.
func SubmissionByStatus(status string) SubmissionPredicate {
	return func(s shared.StudentSubmission) bool { return s.SubmissionStatus == status }
}

// SubmissionGraded matches submissions that have (or have not) been graded.
func SubmissionGraded(graded bool) SubmissionPredicate {
	return func(s shared.StudentSubmission) bool { return s.IsGraded() == graded }
}

// FilterSubmissions returns the submissions matching every predicate.
func FilterSubmissions(submissions []shared.StudentSubmission, predicates ...SubmissionPredicate) []shared.StudentSubmission {
	out := make([]shared.StudentSubmission, 0, len(submissions))
	for _, s := range submissions {
		if matchesSubmission(s, predicates) {
			out = append(out, s)
		}
	}
	return out
}

func matchesSubmission(s shared.StudentSubmission, predicates []SubmissionPredicate) bool {
	for _, p := range predicates {
		if !p(s) {
			return false
		}
	}
	return true
}

// ============================================================================
// Input Helpers
// ============================================================================

// SplitCodes parses comma-separated code input into a deduplicated list,
// preserving first-occurrence order. Empty segments are dropped.
func SplitCodes(input string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, part := range strings.Split(input, ",") {
		code := strings.TrimSpace(part)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}

// EnrolledUnits derives the unit codes a student is enrolled in by joining
// the student's existing submissions back to their assignments' unit codes.
// There is no explicit enrollment table; having submitted anything for a
// unit's assignment counts as enrollment in that unit.
func EnrolledUnits(submissions []shared.StudentSubmission, assignments []shared.Assignment, studentID string) []string {
	unitByAssignment := make(map[string]string, len(assignments))
	for _, a := range assignments {
		unitByAssignment[a.ID] = a.UnitCode
	}

	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, s := range submissions {
		if s.StudentID != studentID {
			continue
		}
		unitCode, ok := unitByAssignment[s.AssignmentID]
		if !ok || seen[unitCode] {
			continue
		}
		seen[unitCode] = true
		out = append(out, unitCode)
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
