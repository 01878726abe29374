// ============================================================================
// backend/internal/shared/models.go
// Shared data models and structs for MongoDB documents
// ============================================================================

package shared

import (
	"strings"
	"time"
)

// ============================================================================
// Status Constants
// ============================================================================

// Assignment status values
const (
	AssignmentOpen   = "OPEN"
	AssignmentClosed = "CLOSED"
)

// Submission status values. The lifecycle only ever moves forward:
// EMPTY -> DRAFT -> SUBMITTED. UNSUBMITTED is a terminal state stamped
// externally for assignments that closed without a submission.
const (
	SubmissionEmpty       = "EMPTY"
	SubmissionDraft       = "DRAFT"
	SubmissionSubmitted   = "SUBMITTED"
	SubmissionUnsubmitted = "UNSUBMITTED"
)

// Weekly material completion states
const (
	MaterialDone    = "DONE"
	MaterialNotDone = "NOT_DONE"
)

// WeeksPerUnit is the number of weekly material slots tracked per unit.
const WeeksPerUnit = 4

// ============================================================================
// Academic Structure Models
// ============================================================================

// Course represents a named program composed of an ordered set of units.
// Units is a denormalized back-reference list: every code in it must name a
// Unit whose CourseCode equals this course's Code, and vice versa. All writes
// to it go through the registry service.
type Course struct {
	Code      string    `bson:"_id" json:"code"`
	Name      string    `bson:"name" json:"name"`
	Units     []string  `bson:"units" json:"units"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Unit represents a course module with weekly material and its own assignments.
type Unit struct {
	Code        string `bson:"_id" json:"code"`
	Name        string `bson:"name" json:"name"`
	CourseCode  string `bson:"course_code" json:"course_code"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	CurrentWeek int32  `bson:"current_week" json:"current_week"`
}

// Teacher represents a teaching staff member. UnitsTeached mirrors the
// original dataset's field name; it is a denormalized list of unit codes
// maintained by the registry service.
type Teacher struct {
	ID           string   `bson:"_id" json:"id"`
	FirstName    string   `bson:"first_name" json:"first_name"`
	LastName     string   `bson:"last_name" json:"last_name"`
	Email        string   `bson:"email" json:"email"`
	UnitsTeached []string `bson:"units_teached" json:"units_teached"`
}

// Coordinator represents a course coordinator account. PasswordHash is a
// bcrypt hash and is never exposed in JSON.
type Coordinator struct {
	ID             string   `bson:"_id" json:"id"`
	FirstName      string   `bson:"first_name" json:"first_name"`
	LastName       string   `bson:"last_name" json:"last_name"`
	Email          string   `bson:"email" json:"email"`
	PasswordHash   string   `bson:"password_hash" json:"-"`
	ManagedCourses []string `bson:"managed_courses" json:"managed_courses"`
}

// Student represents an enrolled student.
type Student struct {
	ID         string `bson:"_id" json:"id"`
	FirstName  string `bson:"first_name" json:"first_name"`
	LastName   string `bson:"last_name" json:"last_name"`
	Email      string `bson:"email" json:"email"`
	CourseCode string `bson:"course_code" json:"course_code"`
	Year       int32  `bson:"year" json:"year"`
}

// ============================================================================
// Assignment & Submission Models
// ============================================================================

// Assignment represents one piece of assessable work belonging to a unit.
// Status is toggled externally (OPEN/CLOSED); the engine only reads it.
type Assignment struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	UnitCode    string    `bson:"unit_code" json:"unit_code"`
	Deadline    time.Time `bson:"deadline" json:"deadline"`
	PublishedAt time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
	Status      string    `bson:"status" json:"status"`
}

// StudentSubmission represents a student's attempt record for one assignment.
// At most one record exists per (StudentID, AssignmentID) pair; the submission
// service enforces this, not storage. Grade is nil until the record has been
// graded.
type StudentSubmission struct {
	SubmissionID     string    `bson:"_id" json:"submission_id"`
	StudentID        string    `bson:"student_id" json:"student_id"`
	AssignmentID     string    `bson:"assignment_id" json:"assignment_id"`
	SubmissionStatus string    `bson:"submission_status" json:"submission_status"`
	SubmissionName   string    `bson:"submission_name,omitempty" json:"submission_name,omitempty"`
	SubmittedAt      time.Time `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	Grade            *float64  `bson:"grade,omitempty" json:"grade"`
	Comment          string    `bson:"comment,omitempty" json:"comment,omitempty"`
	GradedBy         string    `bson:"graded_by,omitempty" json:"graded_by,omitempty"`
}

// IsGraded reports whether a grade has been recorded for the submission.
func (s *StudentSubmission) IsGraded() bool {
	return s.Grade != nil
}

// StudentProgress tracks per-student, per-unit completion of the four weekly
// materials. One record exists per (StudentID, UnitCode) pair.
type StudentProgress struct {
	StudentID     string `bson:"student_id" json:"student_id"`
	UnitCode      string `bson:"unit_code" json:"unit_code"`
	Week1Material string `bson:"week1_material" json:"week1_material"`
	Week2Material string `bson:"week2_material" json:"week2_material"`
	Week3Material string `bson:"week3_material" json:"week3_material"`
	Week4Material string `bson:"week4_material" json:"week4_material"`
}

// WeekMaterials returns the four weekly material states in week order.
func (p *StudentProgress) WeekMaterials() [WeeksPerUnit]string {
	return [WeeksPerUnit]string{p.Week1Material, p.Week2Material, p.Week3Material, p.Week4Material}
}

// SetWeekMaterial sets the material state for the given week (1-4).
// Callers are expected to have validated the week number already.
func (p *StudentProgress) SetWeekMaterial(week int, state string) {
	switch week {
	case 1:
		p.Week1Material = state
	case 2:
		p.Week2Material = state
	case 3:
		p.Week3Material = state
	case 4:
		p.Week4Material = state
	}
}

// ============================================================================
// Helper Functions
// ============================================================================

// CoursePrefix returns the leading two characters of a unit code, used to
// infer course membership (e.g. "BM001" -> "BM"). This is a naming-convention
// heuristic, not a structural join; see the submission rate calculation.
func CoursePrefix(unitCode string) string {
	if len(unitCode) < 2 {
		return unitCode
	}
	return unitCode[:2]
}

// ContainsCode reports whether a code list contains the given code.
func ContainsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// RemoveCode returns the list with every occurrence of code removed,
// preserving the order of the remaining entries.
func RemoveCode(codes []string, code string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}

// ReplaceCode rewrites oldCode to newCode in place, preserving ordering.
// It reports whether a replacement happened.
func ReplaceCode(codes []string, oldCode, newCode string) bool {
	replaced := false
	for i, c := range codes {
		if c == oldCode {
			codes[i] = newCode
			replaced = true
		}
	}
	return replaced
}

// NormalizeEmail lowercases and trims an email address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
