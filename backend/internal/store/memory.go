// ============================================================================
// backend/internal/store/memory.go
// In-memory record store (tests and local development)
// ============================================================================

package store

import (
	"context"
	"sync"

	"uniportal/backend/internal/shared"
)

// MemoryStore is an in-memory implementation of Store. Loads and saves copy
// the backing slices so callers can mutate what they get back without
// affecting the stored state until they save.
type MemoryStore struct {
	mu           sync.RWMutex
	courses      []shared.Course
	units        []shared.Unit
	teachers     []shared.Teacher
	coordinators []shared.Coordinator
	students     []shared.Student
	assignments  []shared.Assignment
	submissions  []shared.StudentSubmission
	progress     []shared.StudentProgress
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// copyCourses deep-copies the nested unit lists so in-place edits on a loaded
// snapshot never leak into stored state before a save.
func copyCourses(in []shared.Course) []shared.Course {
	out := copySlice(in)
	for i := range out {
		out[i].Units = copySlice(out[i].Units)
	}
	return out
}

func copyTeachers(in []shared.Teacher) []shared.Teacher {
	out := copySlice(in)
	for i := range out {
		out[i].UnitsTeached = copySlice(out[i].UnitsTeached)
	}
	return out
}

func copyCoordinators(in []shared.Coordinator) []shared.Coordinator {
	out := copySlice(in)
	for i := range out {
		out[i].ManagedCourses = copySlice(out[i].ManagedCourses)
	}
	return out
}

func (s *MemoryStore) LoadCourses(_ context.Context) ([]shared.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCourses(s.courses), nil
}

func (s *MemoryStore) SaveCourses(_ context.Context, courses []shared.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = copyCourses(courses)
	return nil
}

func (s *MemoryStore) LoadUnits(_ context.Context) ([]shared.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.units), nil
}

func (s *MemoryStore) SaveUnits(_ context.Context, units []shared.Unit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.units = copySlice(units)
	return nil
}

func (s *MemoryStore) LoadTeachers(_ context.Context) ([]shared.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTeachers(s.teachers), nil
}

func (s *MemoryStore) SaveTeachers(_ context.Context, teachers []shared.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teachers = copyTeachers(teachers)
	return nil
}

func (s *MemoryStore) LoadCoordinators(_ context.Context) ([]shared.Coordinator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCoordinators(s.coordinators), nil
}

func (s *MemoryStore) SaveCoordinators(_ context.Context, coordinators []shared.Coordinator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coordinators = copyCoordinators(coordinators)
	return nil
}

func (s *MemoryStore) LoadStudents(_ context.Context) ([]shared.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.students), nil
}

func (s *MemoryStore) SaveStudents(_ context.Context, students []shared.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = copySlice(students)
	return nil
}

func (s *MemoryStore) LoadAssignments(_ context.Context) ([]shared.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.assignments), nil
}

func (s *MemoryStore) SaveAssignments(_ context.Context, assignments []shared.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = copySlice(assignments)
	return nil
}

func (s *MemoryStore) LoadSubmissions(_ context.Context) ([]shared.StudentSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.submissions), nil
}

func (s *MemoryStore) SaveSubmissions(_ context.Context, submissions []shared.StudentSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = copySlice(submissions)
	return nil
}

func (s *MemoryStore) LoadProgress(_ context.Context) ([]shared.StudentProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlice(s.progress), nil
}

func (s *MemoryStore) SaveProgress(_ context.Context, progress []shared.StudentProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = copySlice(progress)
	return nil
}
