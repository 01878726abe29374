package metrics

import (
	"testing"
	"time"

	"uniportal/backend/internal/shared"
)

func gradePtr(v float64) *float64 { return &v }

func closedAssignment(id, unitCode string) shared.Assignment {
	return shared.Assignment{
		ID:       id,
		UnitCode: unitCode,
		Status:   shared.AssignmentClosed,
		Deadline: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func openAssignment(id, unitCode string) shared.Assignment {
	a := closedAssignment(id, unitCode)
	a.Status = shared.AssignmentOpen
	return a
}

func TestUnitProgressPercentage(t *testing.T) {
	t.Run("two done weeks plus one closed of one assignment is 60", func(t *testing.T) {
		progress := shared.StudentProgress{
			StudentID:     "student-001",
			UnitCode:      "BM001",
			Week1Material: shared.MaterialDone,
			Week2Material: shared.MaterialDone,
			Week3Material: shared.MaterialNotDone,
			Week4Material: shared.MaterialNotDone,
		}
		assignments := []shared.Assignment{closedAssignment("A1", "BM001")}

		// numerator 2+1=3, denominator 4+1=5
		if got := UnitProgressPercentage(progress, assignments); got != 60 {
			t.Errorf("expected 60, got %d", got)
		}
	})

	t.Run("open assignments only count in the denominator", func(t *testing.T) {
		progress := shared.StudentProgress{
			Week1Material: shared.MaterialDone,
			Week2Material: shared.MaterialDone,
			Week3Material: shared.MaterialDone,
			Week4Material: shared.MaterialDone,
		}
		assignments := []shared.Assignment{openAssignment("A1", "BM001")}

		// numerator 4, denominator 5
		if got := UnitProgressPercentage(progress, assignments); got != 80 {
			t.Errorf("expected 80, got %d", got)
		}
	})

	t.Run("no assignments degrades to weekly materials only", func(t *testing.T) {
		progress := shared.StudentProgress{Week1Material: shared.MaterialDone}
		if got := UnitProgressPercentage(progress, nil); got != 25 {
			t.Errorf("expected 25, got %d", got)
		}
	})
}

func TestAverageProgress(t *testing.T) {
	t.Run("means percentages across records of different units", func(t *testing.T) {
		records := []shared.StudentProgress{
			{UnitCode: "BM001", Week1Material: shared.MaterialDone, Week2Material: shared.MaterialDone,
				Week3Material: shared.MaterialDone, Week4Material: shared.MaterialDone}, // 100
			{UnitCode: "BM002", Week1Material: shared.MaterialNotDone, Week2Material: shared.MaterialNotDone,
				Week3Material: shared.MaterialNotDone, Week4Material: shared.MaterialNotDone}, // 0
		}
		if got := AverageProgress(records, nil); got != 50 {
			t.Errorf("expected 50, got %d", got)
		}
	})

	t.Run("matches each record against its own unit's assignments", func(t *testing.T) {
		records := []shared.StudentProgress{
			{UnitCode: "BM001", Week1Material: shared.MaterialDone, Week2Material: shared.MaterialDone,
				Week3Material: shared.MaterialNotDone, Week4Material: shared.MaterialNotDone},
		}
		assignments := []shared.Assignment{
			closedAssignment("A1", "BM001"),
			closedAssignment("A2", "IT001"), // different unit, must not contribute
		}
		if got := AverageProgress(records, assignments); got != 60 {
			t.Errorf("expected 60, got %d", got)
		}
	})

	t.Run("empty input is 0", func(t *testing.T) {
		if got := AverageProgress(nil, nil); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestAverageGrade(t *testing.T) {
	submissions := []shared.StudentSubmission{
		{SubmissionID: "S1", Grade: gradePtr(80)},
		{SubmissionID: "S2", Grade: gradePtr(60)},
		{SubmissionID: "S3"}, // ungraded
		{SubmissionID: "S4"}, // ungraded
	}

	t.Run("exclude ungraded", func(t *testing.T) {
		if got := AverageGrade(submissions, ExcludeUngraded); got != 70 {
			t.Errorf("expected 70, got %d", got)
		}
	})

	t.Run("treat ungraded as zero", func(t *testing.T) {
		if got := AverageGrade(submissions, TreatUngradedAsZero); got != 35 {
			t.Errorf("expected 35, got %d", got)
		}
	})

	t.Run("empty input is 0", func(t *testing.T) {
		if got := AverageGrade(nil, ExcludeUngraded); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		if got := AverageGrade([]shared.StudentSubmission{{SubmissionID: "S1"}}, ExcludeUngraded); got != 0 {
			t.Errorf("all-ungraded under ExcludeUngraded should be 0, got %d", got)
		}
	})
}

func TestSubmissionRate(t *testing.T) {
	t.Run("one of two possible submissions is 50", func(t *testing.T) {
		students := []shared.Student{
			{ID: "student-001", CourseCode: "BM"},
			{ID: "student-002", CourseCode: "BM"},
		}
		assignments := []shared.Assignment{closedAssignment("A1", "BM001")}
		submissions := []shared.StudentSubmission{
			{SubmissionID: "S1", StudentID: "student-001", AssignmentID: "A1", SubmissionStatus: shared.SubmissionSubmitted},
		}

		if got := SubmissionRate(students, assignments, submissions); got != 50 {
			t.Errorf("expected 50, got %d", got)
		}
	})

	t.Run("open assignments do not count as possible", func(t *testing.T) {
		students := []shared.Student{{ID: "student-001", CourseCode: "BM"}}
		assignments := []shared.Assignment{openAssignment("A1", "BM001")}

		if got := SubmissionRate(students, assignments, nil); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})

	t.Run("prefix mismatch excludes the assignment for that student", func(t *testing.T) {
		students := []shared.Student{
			{ID: "student-001", CourseCode: "BM"},
			{ID: "student-002", CourseCode: "IT"},
		}
		assignments := []shared.Assignment{closedAssignment("A1", "BM001")}
		submissions := []shared.StudentSubmission{
			{SubmissionID: "S1", StudentID: "student-001", AssignmentID: "A1", SubmissionStatus: shared.SubmissionSubmitted},
		}

		// Only the BM student can have a possible submission: 1 of 1.
		if got := SubmissionRate(students, assignments, submissions); got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("empty input is 0", func(t *testing.T) {
		if got := SubmissionRate(nil, nil, nil); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestFailedAssignmentCount(t *testing.T) {
	submissions := []shared.StudentSubmission{
		{SubmissionID: "S1", Grade: gradePtr(49)},                                // failed by grade
		{SubmissionID: "S2", Grade: gradePtr(50)},                                // passing boundary
		{SubmissionID: "S3", SubmissionStatus: shared.SubmissionUnsubmitted},     // failed by status
		{SubmissionID: "S4", SubmissionStatus: shared.SubmissionSubmitted},       // ungraded, not failed
		{SubmissionID: "S5", Grade: gradePtr(30), SubmissionStatus: shared.SubmissionSubmitted}, // failed once, not twice
	}

	if got := FailedAssignmentCount(submissions); got != 3 {
		t.Errorf("expected 3 failed, got %d", got)
	}
}

func TestAssignmentSuccessRate(t *testing.T) {
	submissions := []shared.StudentSubmission{
		{SubmissionID: "S1", Grade: gradePtr(40)},
		{SubmissionID: "S2", Grade: gradePtr(90)},
		{SubmissionID: "S3", Grade: gradePtr(75)},
		{SubmissionID: "S4", Grade: gradePtr(80)},
	}

	if got := AssignmentSuccessRate(submissions, 4); got != 75 {
		t.Errorf("expected 75, got %d", got)
	}
	if got := AssignmentSuccessRate(nil, 0); got != 0 {
		t.Errorf("expected 0 for zero possible, got %d", got)
	}
}

func TestPossibleSubmissions(t *testing.T) {
	students := []shared.Student{
		{ID: "student-001", CourseCode: "BM"},
		{ID: "student-002", CourseCode: "BM"},
		{ID: "student-003", CourseCode: "CS"},
	}
	assignments := []shared.Assignment{
		closedAssignment("A1", "BM001"),
		closedAssignment("A2", "CS001"),
		openAssignment("A3", "BM002"), // open, never possible
	}

	// Two BM students match the closed BM assignment, one CS student
	// matches the closed CS assignment.
	if got := PossibleSubmissions(students, assignments); got != 3 {
		t.Errorf("expected 3 possible, got %d", got)
	}
	if got := PossibleSubmissions(nil, assignments); got != 0 {
		t.Errorf("expected 0 for no students, got %d", got)
	}
}

func TestComputeDashboardStats(t *testing.T) {
	students := []shared.Student{{ID: "student-001", CourseCode: "BM"}}
	courses := []shared.Course{{Code: "BM"}}
	units := []shared.Unit{{Code: "BM001", CourseCode: "BM"}}
	assignments := []shared.Assignment{
		openAssignment("A1", "BM001"),
		closedAssignment("A2", "BM001"),
	}
	submissions := []shared.StudentSubmission{
		{SubmissionID: "S1", StudentID: "student-001", AssignmentID: "A2",
			SubmissionStatus: shared.SubmissionSubmitted, Grade: gradePtr(90)},
	}

	got := ComputeDashboardStats(students, courses, units, assignments, submissions)

	if got.TotalStudents != 1 || got.TotalCourses != 1 || got.TotalUnits != 1 {
		t.Errorf("unexpected counts: %+v", got)
	}
	if got.OpenAssignments != 1 {
		t.Errorf("expected 1 open assignment, got %d", got.OpenAssignments)
	}
	if got.AverageGrade != 90 {
		t.Errorf("expected average grade 90, got %d", got.AverageGrade)
	}
	if got.SubmissionRate != 100 {
		t.Errorf("expected submission rate 100, got %d", got.SubmissionRate)
	}
	if got.SuccessRate != 100 {
		t.Errorf("expected success rate 100, got %d", got.SuccessRate)
	}

	// A second BM student widens the possible denominator beyond the number
	// of submission records: one failing record over two possible slots.
	students = append(students, shared.Student{ID: "student-002", CourseCode: "BM"})
	submissions[0].Grade = gradePtr(40)

	got = ComputeDashboardStats(students, courses, units, assignments, submissions)
	if got.SuccessRate != 50 {
		t.Errorf("expected success rate 50, got %d", got.SuccessRate)
	}
}
