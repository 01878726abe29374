package query

import (
	"testing"

	"uniportal/backend/internal/shared"
)

func sampleAssignments() []shared.Assignment {
	return []shared.Assignment{
		{ID: "A1", UnitCode: "BM001", Status: shared.AssignmentOpen},
		{ID: "A2", UnitCode: "BM001", Status: shared.AssignmentClosed},
		{ID: "A3", UnitCode: "BM002", Status: shared.AssignmentClosed},
		{ID: "A4", UnitCode: "IT001", Status: shared.AssignmentOpen},
	}
}

func TestFilterAssignments(t *testing.T) {
	assignments := sampleAssignments()

	t.Run("single id", func(t *testing.T) {
		got := FilterAssignments(assignments, AssignmentByID("A3"))
		if len(got) != 1 || got[0].ID != "A3" {
			t.Errorf("expected [A3], got %v", got)
		}
	})

	t.Run("unit codes and status compose with AND", func(t *testing.T) {
		got := FilterAssignments(assignments,
			AssignmentByUnitCodes([]string{"BM001", "BM002"}),
			AssignmentByStatus(shared.AssignmentClosed),
		)
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		for _, a := range got {
			if a.Status != shared.AssignmentClosed {
				t.Errorf("non-closed assignment leaked: %v", a)
			}
		}
	})

	t.Run("filter order does not change the result", func(t *testing.T) {
		byUnit := AssignmentByUnitCodes([]string{"BM001"})
		byStatus := AssignmentByStatus(shared.AssignmentOpen)

		first := FilterAssignments(assignments, byUnit, byStatus)
		second := FilterAssignments(assignments, byStatus, byUnit)

		if len(first) != len(second) {
			t.Fatalf("order changed the result size: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID {
				t.Errorf("order changed the result: %v vs %v", first, second)
			}
		}
	})

	t.Run("no predicates matches everything", func(t *testing.T) {
		if got := FilterAssignments(assignments); len(got) != len(assignments) {
			t.Errorf("expected all %d assignments, got %d", len(assignments), len(got))
		}
	})
}

func TestFilterSubmissions(t *testing.T) {
	grade := 65.0
	submissions := []shared.StudentSubmission{
		{SubmissionID: "S1", StudentID: "student-001", AssignmentID: "A1", SubmissionStatus: shared.SubmissionDraft},
		{SubmissionID: "S2", StudentID: "student-001", AssignmentID: "A2", SubmissionStatus: shared.SubmissionSubmitted, Grade: &grade},
		{SubmissionID: "S3", StudentID: "student-002", AssignmentID: "A2", SubmissionStatus: shared.SubmissionSubmitted},
	}

	t.Run("by student and status", func(t *testing.T) {
		got := FilterSubmissions(submissions,
			SubmissionByStudent("student-001"),
			SubmissionByStatus(shared.SubmissionSubmitted),
		)
		if len(got) != 1 || got[0].SubmissionID != "S2" {
			t.Errorf("expected [S2], got %v", got)
		}
	})

	t.Run("by assignment set and graded flag", func(t *testing.T) {
		got := FilterSubmissions(submissions,
			SubmissionByAssignments([]string{"A2"}),
			SubmissionGraded(false),
		)
		if len(got) != 1 || got[0].SubmissionID != "S3" {
			t.Errorf("expected [S3], got %v", got)
		}
	})
}

func TestSplitCodes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain list", "BM001,BM002", []string{"BM001", "BM002"}},
		{"dedup and trim", " BM001 , BM002,BM001 ", []string{"BM001", "BM002"}},
		{"empty segments dropped", "BM001,,BM002,", []string{"BM001", "BM002"}},
		{"empty input", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitCodes(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestEnrolledUnits(t *testing.T) {
	assignments := sampleAssignments()
	submissions := []shared.StudentSubmission{
		{SubmissionID: "S1", StudentID: "student-001", AssignmentID: "A1"},
		{SubmissionID: "S2", StudentID: "student-001", AssignmentID: "A2"}, // same unit as A1
		{SubmissionID: "S3", StudentID: "student-001", AssignmentID: "A4"},
		{SubmissionID: "S4", StudentID: "student-002", AssignmentID: "A3"},
		{SubmissionID: "S5", StudentID: "student-001", AssignmentID: "GONE"}, // dangling assignment ref
	}

	got := EnrolledUnits(submissions, assignments, "student-001")
	want := []string{"BM001", "IT001"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}

	if got := EnrolledUnits(submissions, assignments, "student-999"); len(got) != 0 {
		t.Errorf("expected no units for unknown student, got %v", got)
	}
}
