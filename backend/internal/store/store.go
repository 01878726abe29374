// ============================================================================
// backend/internal/store/store.go
// Record store adapter interface
// ============================================================================

// Package store provides the record store adapter the engine reads and writes
// collections through. Exactly two operations exist per collection: load all
// records, and atomically replace all records. The engine holds no state
// between operations; every operation reads fresh, mutates, and writes back.
package store

import (
	"context"

	"uniportal/backend/internal/shared"
)

// Collection names as they appear in storage.
const (
	CollectionCourses      = "courses"
	CollectionUnits        = "units"
	CollectionTeachers     = "teachers"
	CollectionCoordinators = "coordinators"
	CollectionStudents     = "students"
	CollectionAssignments  = "assignments"
	CollectionSubmissions  = "submissions"
	CollectionProgress     = "progress"
)

// Store exposes whole-collection reads and atomic whole-collection replaces.
// Both calls are atomic from the engine's point of view; there are no partial
// or streamed writes. Concurrent callers racing on the same collection get
// last-write-wins semantics.
type Store interface {
	LoadCourses(ctx context.Context) ([]shared.Course, error)
	SaveCourses(ctx context.Context, courses []shared.Course) error

	LoadUnits(ctx context.Context) ([]shared.Unit, error)
	SaveUnits(ctx context.Context, units []shared.Unit) error

	LoadTeachers(ctx context.Context) ([]shared.Teacher, error)
	SaveTeachers(ctx context.Context, teachers []shared.Teacher) error

	LoadCoordinators(ctx context.Context) ([]shared.Coordinator, error)
	SaveCoordinators(ctx context.Context, coordinators []shared.Coordinator) error

	LoadStudents(ctx context.Context) ([]shared.Student, error)
	SaveStudents(ctx context.Context, students []shared.Student) error

	LoadAssignments(ctx context.Context) ([]shared.Assignment, error)
	SaveAssignments(ctx context.Context, assignments []shared.Assignment) error

	LoadSubmissions(ctx context.Context) ([]shared.StudentSubmission, error)
	SaveSubmissions(ctx context.Context, submissions []shared.StudentSubmission) error

	LoadProgress(ctx context.Context) ([]shared.StudentProgress, error)
	SaveProgress(ctx context.Context, progress []shared.StudentProgress) error
}
