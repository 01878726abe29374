// ============================================================================
// backend/internal/metrics/aggregate.go
// Progress and grade aggregation over raw records
// ============================================================================

// Package metrics computes derived academic metrics from raw records. Every
// function here is pure: no I/O, no mutation, and no errors for empty or
// malformed-but-well-typed input — results degrade to 0 instead.
package metrics

import (
	"math"

	"github.com/montanaflynn/stats"

	"uniportal/backend/internal/shared"
)

// PassingGrade is the lowest grade not counted as a failed assignment.
const PassingGrade = 50

// GradePolicy selects how ungraded submissions factor into an average.
type GradePolicy int

const (
	// ExcludeUngraded averages over graded submissions only.
	ExcludeUngraded GradePolicy = iota
	// TreatUngradedAsZero counts every ungraded submission as a zero.
	TreatUngradedAsZero
)

// ============================================================================
// Progress
// ============================================================================

// UnitProgressPercentage computes a student's progress through one unit as a
// rounded percentage. The numerator counts completed weekly materials plus
// closed assignments; the denominator counts the four weekly slots plus all
// assignments of the unit. A closed assignment counts toward progress whether
// or not the student submitted: it models "this topic has concluded", not
// "the student finished it".
func UnitProgressPercentage(progress shared.StudentProgress, unitAssignments []shared.Assignment) int {
	numerator := 0
	for _, material := range progress.WeekMaterials() {
		if material == shared.MaterialDone {
			numerator++
		}
	}
	for _, a := range unitAssignments {
		if a.Status == shared.AssignmentClosed {
			numerator++
		}
	}

	denominator := shared.WeeksPerUnit + len(unitAssignments)
	if denominator == 0 {
		return 0
	}

	return int(math.Round(100 * float64(numerator) / float64(denominator)))
}

// AverageProgress computes the mean unit-progress percentage over the given
// progress records, matching each record against the assignments of its own
// unit. The caller is responsible for pre-filtering the records to a
// meaningful cohort. Returns 0 for empty input.
func AverageProgress(progress []shared.StudentProgress, assignments []shared.Assignment) int {
	if len(progress) == 0 {
		return 0
	}

	percentages := make([]float64, 0, len(progress))
	for _, p := range progress {
		unitAssignments := assignmentsForUnit(assignments, p.UnitCode)
		percentages = append(percentages, float64(UnitProgressPercentage(p, unitAssignments)))
	}

	mean, err := stats.Mean(percentages)
	if err != nil {
		return 0
	}
	return int(math.Round(mean))
}

// ============================================================================
// Grades
// ============================================================================

// AverageGrade computes the rounded mean grade over the given submissions.
// Under ExcludeUngraded, submissions without a grade are skipped entirely;
// under TreatUngradedAsZero they pull the average down as zeros. The two
// policies produce materially different numbers. Returns 0 when nothing
// contributes to the average.
func AverageGrade(submissions []shared.StudentSubmission, policy GradePolicy) int {
	grades := make([]float64, 0, len(submissions))
	for _, sub := range submissions {
		if sub.Grade != nil {
			grades = append(grades, *sub.Grade)
		} else if policy == TreatUngradedAsZero {
			grades = append(grades, 0)
		}
	}
	if len(grades) == 0 {
		return 0
	}

	mean, err := stats.Mean(grades)
	if err != nil {
		return 0
	}
	return int(math.Round(mean))
}

// SubmissionRate computes the percentage of possible submissions that were
// actually submitted, restricted to closed assignments. An assignment counts
// as possible for a student when the leading two characters of its unit code
// match the student's course code; this is a naming-convention heuristic
// standing in for a real enrollment join. Returns 0 when no submissions were
// possible.
func SubmissionRate(students []shared.Student, assignments []shared.Assignment, submissions []shared.StudentSubmission) int {
	closed := make(map[string]shared.Assignment)
	for _, a := range assignments {
		if a.Status == shared.AssignmentClosed {
			closed[a.ID] = a
		}
	}

	possible := PossibleSubmissions(students, assignments)
	if possible == 0 {
		return 0
	}

	submitted := 0
	for _, sub := range submissions {
		if _, ok := closed[sub.AssignmentID]; !ok {
			continue
		}
		if sub.SubmissionStatus == shared.SubmissionSubmitted {
			submitted++
		}
	}

	return int(math.Round(100 * float64(submitted) / float64(possible)))
}

// PossibleSubmissions counts how many closed assignments each student could
// have submitted to, summed over all students. An assignment counts for a
// student when the leading two characters of its unit code match the
// student's course code, the same heuristic SubmissionRate uses.
func PossibleSubmissions(students []shared.Student, assignments []shared.Assignment) int {
	possible := 0
	for _, student := range students {
		for _, a := range assignments {
			if a.Status != shared.AssignmentClosed {
				continue
			}
			if shared.CoursePrefix(a.UnitCode) == student.CourseCode {
				possible++
			}
		}
	}
	return possible
}

// FailedAssignmentCount counts submissions that failed: graded below the
// passing mark, or left unsubmitted when the assignment closed.
func FailedAssignmentCount(submissions []shared.StudentSubmission) int {
	failed := 0
	for _, sub := range submissions {
		if sub.Grade != nil && *sub.Grade < PassingGrade {
			failed++
			continue
		}
		if sub.SubmissionStatus == shared.SubmissionUnsubmitted {
			failed++
		}
	}
	return failed
}

// AssignmentSuccessRate derives the success-rate display value from the
// failed count: 100 minus the failed share of possible submissions. Returns
// 0 when nothing was possible.
func AssignmentSuccessRate(submissions []shared.StudentSubmission, possible int) int {
	if possible <= 0 {
		return 0
	}
	failed := FailedAssignmentCount(submissions)
	return 100 - int(math.Round(100*float64(failed)/float64(possible)))
}

// ============================================================================
// Dashboard
// ============================================================================

// DashboardStats aggregates the coordinator dashboard numbers.
type DashboardStats struct {
	TotalStudents    int `json:"total_students"`
	TotalCourses     int `json:"total_courses"`
	TotalUnits       int `json:"total_units"`
	OpenAssignments  int `json:"open_assignments"`
	TotalSubmissions int `json:"total_submissions"`
	AverageGrade     int `json:"average_grade"`
	SubmissionRate   int `json:"submission_rate"`
	SuccessRate      int `json:"success_rate"`
}

// ComputeDashboardStats derives the dashboard aggregate from raw collections.
func ComputeDashboardStats(
	students []shared.Student,
	courses []shared.Course,
	units []shared.Unit,
	assignments []shared.Assignment,
	submissions []shared.StudentSubmission,
) DashboardStats {
	open := 0
	for _, a := range assignments {
		if a.Status == shared.AssignmentOpen {
			open++
		}
	}

	return DashboardStats{
		TotalStudents:    len(students),
		TotalCourses:     len(courses),
		TotalUnits:       len(units),
		OpenAssignments:  open,
		TotalSubmissions: len(submissions),
		AverageGrade:     AverageGrade(submissions, ExcludeUngraded),
		SubmissionRate:   SubmissionRate(students, assignments, submissions),
		SuccessRate:      AssignmentSuccessRate(submissions, PossibleSubmissions(students, assignments)),
	}
}

func assignmentsForUnit(assignments []shared.Assignment, unitCode string) []shared.Assignment {
	out := make([]shared.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.UnitCode == unitCode {
			out = append(out, a)
		}
	}
	return out
}
