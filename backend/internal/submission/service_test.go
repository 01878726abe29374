package submission

import (
	"context"
	"testing"

	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

func newService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewService(st), st
}

func draft(id, studentID, assignmentID string) shared.StudentSubmission {
	return shared.StudentSubmission{
		SubmissionID:     id,
		StudentID:        studentID,
		AssignmentID:     assignmentID,
		SubmissionStatus: shared.SubmissionDraft,
		SubmissionName:   "essay.docx",
	}
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("first save creates", func(t *testing.T) {
		svc, st := newService(t)

		result, err := svc.Upsert(ctx, draft("S1", "student-001", "A1"))
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		if result.Action != ActionCreated {
			t.Errorf("expected action %q, got %q", ActionCreated, result.Action)
		}

		submissions, _ := st.LoadSubmissions(ctx)
		if len(submissions) != 1 {
			t.Fatalf("expected 1 submission, got %d", len(submissions))
		}
	})

	t.Run("second save for the same pair updates in place", func(t *testing.T) {
		svc, st := newService(t)

		if _, err := svc.Upsert(ctx, draft("S1", "student-001", "A1")); err != nil {
			t.Fatalf("first Upsert failed: %v", err)
		}

		final := draft("S1", "student-001", "A1")
		final.SubmissionStatus = shared.SubmissionSubmitted
		result, err := svc.Upsert(ctx, final)
		if err != nil {
			t.Fatalf("second Upsert failed: %v", err)
		}
		if result.Action != ActionUpdated {
			t.Errorf("expected action %q, got %q", ActionUpdated, result.Action)
		}

		submissions, _ := st.LoadSubmissions(ctx)
		if len(submissions) != 1 {
			t.Fatalf("expected 1 submission after re-save, got %d", len(submissions))
		}
		if submissions[0].SubmissionStatus != shared.SubmissionSubmitted {
			t.Errorf("expected status SUBMITTED, got %s", submissions[0].SubmissionStatus)
		}
	})

	t.Run("different pairs never collide", func(t *testing.T) {
		svc, st := newService(t)

		records := []shared.StudentSubmission{
			draft("S1", "student-001", "A1"),
			draft("S2", "student-001", "A2"),
			draft("S3", "student-002", "A1"),
		}
		for _, r := range records {
			if _, err := svc.Upsert(ctx, r); err != nil {
				t.Fatalf("Upsert %s failed: %v", r.SubmissionID, err)
			}
		}

		submissions, _ := st.LoadSubmissions(ctx)
		if len(submissions) != 3 {
			t.Errorf("expected 3 submissions, got %d", len(submissions))
		}
	})

	t.Run("rejects missing identity fields", func(t *testing.T) {
		svc, _ := newService(t)

		if _, err := svc.Upsert(ctx, draft("S1", "", "A1")); !shared.IsValidation(err) {
			t.Errorf("expected ValidationError for missing student, got %v", err)
		}
		if _, err := svc.Upsert(ctx, draft("S1", "student-001", "")); !shared.IsValidation(err) {
			t.Errorf("expected ValidationError for missing assignment, got %v", err)
		}
	})

	t.Run("draft re-save after final submit is rejected", func(t *testing.T) {
		svc, st := newService(t)

		final := draft("S1", "student-001", "A1")
		final.SubmissionStatus = shared.SubmissionSubmitted
		if _, err := svc.Upsert(ctx, final); err != nil {
			t.Fatalf("submit failed: %v", err)
		}

		if _, err := svc.Upsert(ctx, draft("S1", "student-001", "A1")); !shared.IsValidation(err) {
			t.Fatalf("expected ValidationError for backward transition, got %v", err)
		}

		submissions, _ := st.LoadSubmissions(ctx)
		if submissions[0].SubmissionStatus != shared.SubmissionSubmitted {
			t.Errorf("expected stored record to stay SUBMITTED, got %s", submissions[0].SubmissionStatus)
		}
	})

	t.Run("resubmit at the same rank is allowed", func(t *testing.T) {
		svc, st := newService(t)

		final := draft("S1", "student-001", "A1")
		final.SubmissionStatus = shared.SubmissionSubmitted
		if _, err := svc.Upsert(ctx, final); err != nil {
			t.Fatalf("submit failed: %v", err)
		}

		final.SubmissionName = "essay_v2.docx"
		result, err := svc.Upsert(ctx, final)
		if err != nil {
			t.Fatalf("resubmit failed: %v", err)
		}
		if result.Action != ActionUpdated {
			t.Errorf("expected action %q, got %q", ActionUpdated, result.Action)
		}

		submissions, _ := st.LoadSubmissions(ctx)
		if submissions[0].SubmissionName != "essay_v2.docx" {
			t.Errorf("expected resubmitted name, got %s", submissions[0].SubmissionName)
		}
	})

	t.Run("unsubmitted records are frozen", func(t *testing.T) {
		svc, st := newService(t)

		closed := draft("S1", "student-001", "A1")
		closed.SubmissionStatus = shared.SubmissionUnsubmitted
		if err := st.SaveSubmissions(ctx, []shared.StudentSubmission{closed}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		final := draft("S1", "student-001", "A1")
		final.SubmissionStatus = shared.SubmissionSubmitted
		if _, err := svc.Upsert(ctx, final); !shared.IsValidation(err) {
			t.Errorf("expected ValidationError overwriting UNSUBMITTED, got %v", err)
		}
	})
}

func TestGrade(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*Service, *store.MemoryStore) {
		svc, st := newService(t)
		sub := draft("S1", "student-001", "A1")
		sub.SubmissionStatus = shared.SubmissionSubmitted
		sub.Comment = "original comment"
		if _, err := svc.Upsert(ctx, sub); err != nil {
			t.Fatalf("seeding submission: %v", err)
		}
		return svc, st
	}

	t.Run("boundary values", func(t *testing.T) {
		svc, _ := seed(t)

		if _, err := svc.Grade(ctx, "S1", -1, "", ""); !shared.IsValidation(err) {
			t.Errorf("grade -1: expected ValidationError, got %v", err)
		}
		if _, err := svc.Grade(ctx, "S1", 101, "", ""); !shared.IsValidation(err) {
			t.Errorf("grade 101: expected ValidationError, got %v", err)
		}
		if _, err := svc.Grade(ctx, "S1", 0, "", ""); err != nil {
			t.Errorf("grade 0 should succeed: %v", err)
		}
		if _, err := svc.Grade(ctx, "S1", 100, "", ""); err != nil {
			t.Errorf("grade 100 should succeed: %v", err)
		}
	})

	t.Run("merges grade, keeps status, defaults grader", func(t *testing.T) {
		svc, st := seed(t)

		graded, err := svc.Grade(ctx, "S1", 85, "", "")
		if err != nil {
			t.Fatalf("Grade failed: %v", err)
		}
		if graded.Grade == nil || *graded.Grade != 85 {
			t.Errorf("expected grade 85, got %v", graded.Grade)
		}
		if graded.Comment != "original comment" {
			t.Errorf("omitted comment should keep existing, got %q", graded.Comment)
		}
		if graded.GradedBy != GradedByDefault {
			t.Errorf("expected graded_by %q, got %q", GradedByDefault, graded.GradedBy)
		}
		if graded.SubmissionStatus != shared.SubmissionSubmitted {
			t.Errorf("grading must not change status, got %s", graded.SubmissionStatus)
		}

		submissions, _ := st.LoadSubmissions(ctx)
		if submissions[0].Grade == nil {
			t.Error("grade not persisted")
		}
	})

	t.Run("explicit comment and grader win", func(t *testing.T) {
		svc, _ := seed(t)

		graded, err := svc.Grade(ctx, "S1", 70, "good work", "coord-7")
		if err != nil {
			t.Fatalf("Grade failed: %v", err)
		}
		if graded.Comment != "good work" || graded.GradedBy != "coord-7" {
			t.Errorf("expected explicit comment/grader, got %q / %q", graded.Comment, graded.GradedBy)
		}
	})

	t.Run("unknown submission", func(t *testing.T) {
		svc, _ := seed(t)

		if _, err := svc.Grade(ctx, "NOPE", 50, "", ""); !shared.IsNotFound(err) {
			t.Errorf("expected NotFoundError, got %v", err)
		}
	})
}

func TestFindForAssignmentsAndStudent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	records := []shared.StudentSubmission{
		draft("S1", "student-001", "A1"),
		draft("S2", "student-001", "A2"),
		draft("S3", "student-002", "A1"),
		draft("S4", "student-002", "A3"),
	}
	for _, r := range records {
		if _, err := svc.Upsert(ctx, r); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	t.Run("filters by assignment set", func(t *testing.T) {
		found, err := svc.FindForAssignmentsAndStudent(ctx, []string{"A1", "A2"}, "")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if len(found) != 3 {
			t.Errorf("expected 3 matches, got %d", len(found))
		}
	})

	t.Run("narrows to a student when given", func(t *testing.T) {
		found, err := svc.FindForAssignmentsAndStudent(ctx, []string{"A1", "A2"}, "student-002")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if len(found) != 1 || found[0].SubmissionID != "S3" {
			t.Errorf("expected only S3, got %v", found)
		}
	})

	t.Run("empty assignment set matches nothing", func(t *testing.T) {
		found, err := svc.FindForAssignmentsAndStudent(ctx, nil, "student-001")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if len(found) != 0 {
			t.Errorf("expected no matches, got %d", len(found))
		}
	})
}

func TestSetWeekMaterial(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the record on first edit", func(t *testing.T) {
		svc, st := newService(t)

		updated, err := svc.SetWeekMaterial(ctx, "student-001", "BM001", 2, shared.MaterialDone)
		if err != nil {
			t.Fatalf("SetWeekMaterial failed: %v", err)
		}
		if updated.Week2Material != shared.MaterialDone {
			t.Errorf("expected week 2 DONE, got %s", updated.Week2Material)
		}
		if updated.Week1Material != shared.MaterialNotDone {
			t.Errorf("untouched weeks should default to NOT_DONE, got %s", updated.Week1Material)
		}

		progress, _ := st.LoadProgress(ctx)
		if len(progress) != 1 {
			t.Errorf("expected 1 progress record, got %d", len(progress))
		}
	})

	t.Run("mutates the existing record on later edits", func(t *testing.T) {
		svc, st := newService(t)

		if _, err := svc.SetWeekMaterial(ctx, "student-001", "BM001", 1, shared.MaterialDone); err != nil {
			t.Fatalf("first edit: %v", err)
		}
		if _, err := svc.SetWeekMaterial(ctx, "student-001", "BM001", 3, shared.MaterialDone); err != nil {
			t.Fatalf("second edit: %v", err)
		}

		progress, _ := st.LoadProgress(ctx)
		if len(progress) != 1 {
			t.Fatalf("expected a single record per (student, unit), got %d", len(progress))
		}
		if progress[0].Week1Material != shared.MaterialDone || progress[0].Week3Material != shared.MaterialDone {
			t.Errorf("expected weeks 1 and 3 DONE, got %+v", progress[0])
		}
	})

	t.Run("validates week and state", func(t *testing.T) {
		svc, _ := newService(t)

		if _, err := svc.SetWeekMaterial(ctx, "s", "u", 0, shared.MaterialDone); !shared.IsValidation(err) {
			t.Errorf("week 0: expected ValidationError, got %v", err)
		}
		if _, err := svc.SetWeekMaterial(ctx, "s", "u", 5, shared.MaterialDone); !shared.IsValidation(err) {
			t.Errorf("week 5: expected ValidationError, got %v", err)
		}
		if _, err := svc.SetWeekMaterial(ctx, "s", "u", 1, "MAYBE"); !shared.IsValidation(err) {
			t.Errorf("bad state: expected ValidationError, got %v", err)
		}
	})
}
