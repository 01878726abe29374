// ============================================================================
// backend/internal/registry/service.go
// Referential integrity manager for the Course / Unit / Teacher graph
// ============================================================================

// Package registry keeps the denormalized cross-references between courses,
// units, teachers and coordinators mutually consistent under structural edits.
// Every mutation of course.Units, teacher.UnitsTeached and
// coordinator.ManagedCourses goes through this service; no other code path
// writes these lists.
//
// Write policy: the primary collection write is required and aborts the whole
// operation on failure. Secondary writes (propagating a code change into
// dependent lists) are best-effort: failures are logged and do not roll back
// the primary write. The store self-heals on the next successful edit.
package registry

import (
	"context"
	"log"

	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

// Service applies structural edits to the academic registry.
type Service struct {
	store store.Store
}

// NewService creates a registry Service over the given store.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// ============================================================================
// Course Operations
// ============================================================================

// AddCourse creates a course and records it on the managing coordinator.
// Fails with ConflictError if the course code is already taken and with
// NotFoundError if the coordinator does not exist.
func (s *Service) AddCourse(ctx context.Context, course shared.Course, managedBy string) error {
	if course.Code == "" {
		return shared.NewValidationError("code", "course code is required")
	}
	if managedBy == "" {
		return shared.NewValidationError("managed_by", "managing coordinator is required")
	}

	courses, err := s.store.LoadCourses(ctx)
	if err != nil {
		return err
	}
	for _, c := range courses {
		if c.Code == course.Code {
			return shared.NewConflictError("course", course.Code)
		}
	}

	coordinators, err := s.store.LoadCoordinators(ctx)
	if err != nil {
		return err
	}
	coordIdx := findCoordinator(coordinators, managedBy)
	if coordIdx < 0 {
		return shared.NewNotFoundError("coordinator", managedBy)
	}

	if course.Units == nil {
		course.Units = []string{}
	}
	courses = append(courses, course)
	if err := s.store.SaveCourses(ctx, courses); err != nil {
		return err
	}

	// Secondary write: record the course on the coordinator.
	if !shared.ContainsCode(coordinators[coordIdx].ManagedCourses, course.Code) {
		coordinators[coordIdx].ManagedCourses = append(coordinators[coordIdx].ManagedCourses, course.Code)
		if err := s.store.SaveCoordinators(ctx, coordinators); err != nil {
			log.Printf("Warning: course %s created but coordinator %s not updated: %v", course.Code, managedBy, err)
		}
	}

	return nil
}

// DeleteCourse removes a course, cascading: every unit of the course is
// deleted first, then the course itself, then the course code is stripped
// from every coordinator's managed-course list.
func (s *Service) DeleteCourse(ctx context.Context, code string) error {
	courses, err := s.store.LoadCourses(ctx)
	if err != nil {
		return err
	}
	courseIdx := findCourse(courses, code)
	if courseIdx < 0 {
		return shared.NewNotFoundError("course", code)
	}

	units, err := s.store.LoadUnits(ctx)
	if err != nil {
		return err
	}
	remaining := make([]shared.Unit, 0, len(units))
	removed := make([]string, 0)
	for _, u := range units {
		if u.CourseCode == code {
			removed = append(removed, u.Code)
			continue
		}
		remaining = append(remaining, u)
	}
	if len(removed) > 0 {
		if err := s.store.SaveUnits(ctx, remaining); err != nil {
			return err
		}
	}

	courses = append(courses[:courseIdx], courses[courseIdx+1:]...)
	if err := s.store.SaveCourses(ctx, courses); err != nil {
		return err
	}

	// Secondary writes: drop dangling unit codes from teachers and the
	// course code from coordinators.
	if len(removed) > 0 {
		if err := s.stripUnitsFromTeachers(ctx, removed); err != nil {
			log.Printf("Warning: course %s deleted but teacher lists not updated: %v", code, err)
		}
	}

	coordinators, err := s.store.LoadCoordinators(ctx)
	if err != nil {
		log.Printf("Warning: course %s deleted but coordinator lists not read: %v", code, err)
		return nil
	}
	changed := false
	for i := range coordinators {
		if shared.ContainsCode(coordinators[i].ManagedCourses, code) {
			coordinators[i].ManagedCourses = shared.RemoveCode(coordinators[i].ManagedCourses, code)
			changed = true
		}
	}
	if changed {
		if err := s.store.SaveCoordinators(ctx, coordinators); err != nil {
			log.Printf("Warning: course %s deleted but coordinator lists not updated: %v", code, err)
		}
	}

	return nil
}

// ============================================================================
// Unit Operations
// ============================================================================

// AddUnit creates a unit under an existing course and, when teacherID is
// given, records the unit on that teacher. Fails with ConflictError if the
// unit code is taken and NotFoundError if the course (or teacher) does not
// exist. A teacher failure does not roll back the unit and course writes.
func (s *Service) AddUnit(ctx context.Context, unit shared.Unit, teacherID string) error {
	if unit.Code == "" {
		return shared.NewValidationError("code", "unit code is required")
	}

	units, err := s.store.LoadUnits(ctx)
	if err != nil {
		return err
	}
	for _, u := range units {
		if u.Code == unit.Code {
			return shared.NewConflictError("unit", unit.Code)
		}
	}

	courses, err := s.store.LoadCourses(ctx)
	if err != nil {
		return err
	}
	courseIdx := findCourse(courses, unit.CourseCode)
	if courseIdx < 0 {
		return shared.NewNotFoundError("course", unit.CourseCode)
	}

	units = append(units, unit)
	if err := s.store.SaveUnits(ctx, units); err != nil {
		return err
	}

	// Idempotent append: re-adding an already-listed code is a no-op.
	if !shared.ContainsCode(courses[courseIdx].Units, unit.Code) {
		courses[courseIdx].Units = append(courses[courseIdx].Units, unit.Code)
		if err := s.store.SaveCourses(ctx, courses); err != nil {
			log.Printf("Warning: unit %s created but course %s not updated: %v", unit.Code, unit.CourseCode, err)
		}
	}

	if teacherID == "" {
		return nil
	}

	teachers, err := s.store.LoadTeachers(ctx)
	if err != nil {
		log.Printf("Warning: unit %s created but teacher lists not read: %v", unit.Code, err)
		return err
	}
	teacherIdx := findTeacher(teachers, teacherID)
	if teacherIdx < 0 {
		log.Printf("Warning: unit %s created but teacher %s does not exist", unit.Code, teacherID)
		return shared.NewNotFoundError("teacher", teacherID)
	}
	if !shared.ContainsCode(teachers[teacherIdx].UnitsTeached, unit.Code) {
		teachers[teacherIdx].UnitsTeached = append(teachers[teacherIdx].UnitsTeached, unit.Code)
		if err := s.store.SaveTeachers(ctx, teachers); err != nil {
			log.Printf("Warning: unit %s created but teacher %s not updated: %v", unit.Code, teacherID, err)
		}
	}

	return nil
}

// RenameUnit replaces the unit stored under oldCode with the updated record.
// When the code changes, the reference is rewritten in place (preserving
// ordering) in the parent course's unit list and in every teacher's
// units-teached list. When the course code changes, the unit moves: its code
// is removed from the old parent's list and appended to the new parent's.
// Fails with ConflictError if the new code belongs to a different existing
// unit and NotFoundError if a changed course code references no course.
func (s *Service) RenameUnit(ctx context.Context, oldCode string, updated shared.Unit) error {
	if updated.Code == "" {
		return shared.NewValidationError("code", "unit code is required")
	}

	units, err := s.store.LoadUnits(ctx)
	if err != nil {
		return err
	}
	unitIdx := -1
	for i, u := range units {
		if u.Code == oldCode {
			unitIdx = i
			continue
		}
		if u.Code == updated.Code {
			return shared.NewConflictError("unit", updated.Code)
		}
	}
	if unitIdx < 0 {
		return shared.NewNotFoundError("unit", oldCode)
	}

	oldCourseCode := units[unitIdx].CourseCode
	if updated.CourseCode == "" {
		updated.CourseCode = oldCourseCode
	}
	codeChanged := updated.Code != oldCode
	courseChanged := updated.CourseCode != oldCourseCode

	// A move to another course is pre-checked like AddUnit: the target must
	// exist before the primary write happens.
	var courses []shared.Course
	if courseChanged {
		courses, err = s.store.LoadCourses(ctx)
		if err != nil {
			return err
		}
		if findCourse(courses, updated.CourseCode) < 0 {
			return shared.NewNotFoundError("course", updated.CourseCode)
		}
	}

	units[unitIdx] = updated
	if err := s.store.SaveUnits(ctx, units); err != nil {
		return err
	}

	if !codeChanged && !courseChanged {
		return nil
	}

	// Secondary writes: propagate the change to dependent course lists.
	if courses == nil {
		courses, err = s.store.LoadCourses(ctx)
		if err != nil {
			log.Printf("Warning: unit %s renamed but course lists not read: %v", oldCode, err)
			courses = nil
		}
	}
	if courses != nil {
		changed := false
		if courseChanged {
			if oldIdx := findCourse(courses, oldCourseCode); oldIdx >= 0 && shared.ContainsCode(courses[oldIdx].Units, oldCode) {
				courses[oldIdx].Units = shared.RemoveCode(courses[oldIdx].Units, oldCode)
				changed = true
			}
			newIdx := findCourse(courses, updated.CourseCode)
			if newIdx >= 0 && !shared.ContainsCode(courses[newIdx].Units, updated.Code) {
				courses[newIdx].Units = append(courses[newIdx].Units, updated.Code)
				changed = true
			}
		} else {
			courseIdx := findCourse(courses, updated.CourseCode)
			if courseIdx >= 0 && shared.ReplaceCode(courses[courseIdx].Units, oldCode, updated.Code) {
				changed = true
			}
		}
		if changed {
			if err := s.store.SaveCourses(ctx, courses); err != nil {
				log.Printf("Warning: unit %s renamed but course lists not updated: %v", oldCode, err)
			}
		}
	}

	if !codeChanged {
		return nil
	}

	teachers, err := s.store.LoadTeachers(ctx)
	if err != nil {
		log.Printf("Warning: unit %s renamed but teacher lists not read: %v", oldCode, err)
		return nil
	}
	changed := false
	for i := range teachers {
		if shared.ReplaceCode(teachers[i].UnitsTeached, oldCode, updated.Code) {
			changed = true
		}
	}
	if changed {
		if err := s.store.SaveTeachers(ctx, teachers); err != nil {
			log.Printf("Warning: unit %s renamed but teacher lists not updated: %v", oldCode, err)
		}
	}

	return nil
}

// DeleteUnit removes a unit, its entry in the parent course's unit list, and
// its code from every teacher referencing it (zero or many teachers).
func (s *Service) DeleteUnit(ctx context.Context, code string) error {
	units, err := s.store.LoadUnits(ctx)
	if err != nil {
		return err
	}
	unitIdx := -1
	for i, u := range units {
		if u.Code == code {
			unitIdx = i
			break
		}
	}
	if unitIdx < 0 {
		return shared.NewNotFoundError("unit", code)
	}
	courseCode := units[unitIdx].CourseCode

	units = append(units[:unitIdx], units[unitIdx+1:]...)
	if err := s.store.SaveUnits(ctx, units); err != nil {
		return err
	}

	// Secondary writes.
	courses, err := s.store.LoadCourses(ctx)
	if err != nil {
		log.Printf("Warning: unit %s deleted but course lists not read: %v", code, err)
	} else {
		courseIdx := findCourse(courses, courseCode)
		if courseIdx >= 0 && shared.ContainsCode(courses[courseIdx].Units, code) {
			courses[courseIdx].Units = shared.RemoveCode(courses[courseIdx].Units, code)
			if err := s.store.SaveCourses(ctx, courses); err != nil {
				log.Printf("Warning: unit %s deleted but course %s not updated: %v", code, courseCode, err)
			}
		}
	}

	if err := s.stripUnitsFromTeachers(ctx, []string{code}); err != nil {
		log.Printf("Warning: unit %s deleted but teacher lists not updated: %v", code, err)
	}

	return nil
}

// ChangeUnitTeacher applies the three-way delta of a unit edit to the teacher
// collection: the old teacher loses the unit, the new teacher gains it, and a
// code change with an unchanged teacher is rewritten in place. A no-op delta
// produces no store write.
func (s *Service) ChangeUnitTeacher(ctx context.Context, oldUnitCode, newUnitCode, oldTeacherID, newTeacherID string) error {
	if oldUnitCode == newUnitCode && oldTeacherID == newTeacherID {
		return nil
	}

	teachers, err := s.store.LoadTeachers(ctx)
	if err != nil {
		return err
	}

	changed := false

	if oldTeacherID != "" && oldTeacherID == newTeacherID {
		// Same teacher, unit code changed: rewrite in place.
		idx := findTeacher(teachers, oldTeacherID)
		if idx < 0 {
			return shared.NewNotFoundError("teacher", oldTeacherID)
		}
		if shared.ReplaceCode(teachers[idx].UnitsTeached, oldUnitCode, newUnitCode) {
			changed = true
		}
	} else {
		if oldTeacherID != "" {
			idx := findTeacher(teachers, oldTeacherID)
			if idx >= 0 && shared.ContainsCode(teachers[idx].UnitsTeached, oldUnitCode) {
				teachers[idx].UnitsTeached = shared.RemoveCode(teachers[idx].UnitsTeached, oldUnitCode)
				changed = true
			}
		}
		if newTeacherID != "" {
			idx := findTeacher(teachers, newTeacherID)
			if idx < 0 {
				return shared.NewNotFoundError("teacher", newTeacherID)
			}
			if !shared.ContainsCode(teachers[idx].UnitsTeached, newUnitCode) {
				teachers[idx].UnitsTeached = append(teachers[idx].UnitsTeached, newUnitCode)
				changed = true
			}
		}
	}

	if !changed {
		return nil
	}
	return s.store.SaveTeachers(ctx, teachers)
}

// ============================================================================
// Helpers
// ============================================================================

// stripUnitsFromTeachers removes the given unit codes from every teacher's
// units-teached list, saving only when something actually changed.
func (s *Service) stripUnitsFromTeachers(ctx context.Context, unitCodes []string) error {
	teachers, err := s.store.LoadTeachers(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range teachers {
		for _, code := range unitCodes {
			if shared.ContainsCode(teachers[i].UnitsTeached, code) {
				teachers[i].UnitsTeached = shared.RemoveCode(teachers[i].UnitsTeached, code)
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return s.store.SaveTeachers(ctx, teachers)
}

func findCourse(courses []shared.Course, code string) int {
	for i, c := range courses {
		if c.Code == code {
			return i
		}
	}
	return -1
}

func findTeacher(teachers []shared.Teacher, id string) int {
	for i, t := range teachers {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func findCoordinator(coordinators []shared.Coordinator, id string) int {
	for i, c := range coordinators {
		if c.ID == id {
			return i
		}
	}
	return -1
}
