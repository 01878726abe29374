package store

import (
	"context"
	"testing"

	"uniportal/backend/internal/shared"
)

func TestMemoryStoreCopiesOnLoadAndSave(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	seed := []shared.Course{{Code: "BM", Name: "Business Management", Units: []string{"BM001"}}}
	if err := st.SaveCourses(ctx, seed); err != nil {
		t.Fatalf("SaveCourses failed: %v", err)
	}

	// Mutating the slice handed to Save must not leak into the store.
	seed[0].Name = "mutated"

	loaded, err := st.LoadCourses(ctx)
	if err != nil {
		t.Fatalf("LoadCourses failed: %v", err)
	}
	if loaded[0].Name != "Business Management" {
		t.Errorf("store aliased the saved slice: %q", loaded[0].Name)
	}

	// Mutating a loaded slice must not change stored state until saved.
	loaded[0].Name = "draft edit"
	again, _ := st.LoadCourses(ctx)
	if again[0].Name != "Business Management" {
		t.Errorf("store aliased the loaded slice: %q", again[0].Name)
	}
}

func TestMemoryStoreReplacesWholeCollections(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if err := st.SaveUnits(ctx, []shared.Unit{{Code: "BM001", CourseCode: "BM"}, {Code: "BM002", CourseCode: "BM"}}); err != nil {
		t.Fatalf("SaveUnits failed: %v", err)
	}
	if err := st.SaveUnits(ctx, []shared.Unit{{Code: "BM003", CourseCode: "BM"}}); err != nil {
		t.Fatalf("second SaveUnits failed: %v", err)
	}

	units, err := st.LoadUnits(ctx)
	if err != nil {
		t.Fatalf("LoadUnits failed: %v", err)
	}
	if len(units) != 1 || units[0].Code != "BM003" {
		t.Errorf("expected replace semantics, got %v", units)
	}
}

func TestMemoryStoreEmptyCollections(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	submissions, err := st.LoadSubmissions(ctx)
	if err != nil {
		t.Fatalf("LoadSubmissions failed: %v", err)
	}
	if len(submissions) != 0 {
		t.Errorf("expected empty collection, got %d records", len(submissions))
	}
}
