package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"uniportal/backend/internal/shared"
	"uniportal/backend/internal/store"
)

// Seeded account credentials
const (
	CoordinatorID1 = "coord-001"
	CoordinatorID2 = "coord-002"
	CommonPassword = "password"
)

func main() {
	log.Println("Starting Database Seeder...")

	shared.LoadEnv(".env")

	cfg, err := shared.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer shared.DisconnectMongoDB(client)

	// Drop all collections to ensure a clean start
	if err := db.Drop(context.Background()); err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}
	log.Println("Database cleared successfully.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st := store.NewMongoStore(db)

	// --- 1. Coordinators ---
	seedCoordinators(ctx, st, cfg.Security.BCryptCost)

	// --- 2. Courses, Units, Teachers ---
	seedStructure(ctx, st)

	// --- 3. Students ---
	seedStudents(ctx, st)

	// --- 4. Assignments, Submissions, Progress ---
	seedWork(ctx, st)

	log.Println("All data seeding completed successfully.")
}

// ============================================================================
// SEEDING FUNCTIONS
// ============================================================================

func seedCoordinators(ctx context.Context, st store.Store, bcryptCost int) {
	log.Println("--- Seeding Coordinators ---")

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(CommonPassword), bcryptCost)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}
	hash := string(hashedBytes)

	coordinators := []shared.Coordinator{
		{ID: CoordinatorID1, FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", PasswordHash: hash, ManagedCourses: []string{"BM", "CS"}},
		{ID: CoordinatorID2, FirstName: "Alan", LastName: "Kay", Email: "alan@example.com", PasswordHash: hash, ManagedCourses: []string{"MA"}},
	}

	if err := st.SaveCoordinators(ctx, coordinators); err != nil {
		log.Fatalf("Error seeding coordinators: %v", err)
	}
	for _, c := range coordinators {
		log.Printf("Seeded Coordinator: %s", c.Email)
	}
}

func seedStructure(ctx context.Context, st store.Store) {
	log.Println("--- Seeding Courses, Units & Teachers ---")
	now := time.Now()

	courses := []shared.Course{
		{Code: "BM", Name: "Business Management", Units: []string{"BM001", "BM002"}, CreatedAt: now, UpdatedAt: now},
		{Code: "CS", Name: "Computer Science", Units: []string{"CS001"}, CreatedAt: now, UpdatedAt: now},
		{Code: "MA", Name: "Mathematics", Units: []string{"MA001"}, CreatedAt: now, UpdatedAt: now},
	}
	if err := st.SaveCourses(ctx, courses); err != nil {
		log.Fatalf("Error seeding courses: %v", err)
	}

	units := []shared.Unit{
		{Code: "BM001", Name: "Principles of Management", CourseCode: "BM", CurrentWeek: 3},
		{Code: "BM002", Name: "Organizational Behaviour", CourseCode: "BM", CurrentWeek: 2},
		{Code: "CS001", Name: "Introduction to Programming", CourseCode: "CS", CurrentWeek: 4},
		{Code: "MA001", Name: "Calculus I", CourseCode: "MA", CurrentWeek: 1},
	}
	if err := st.SaveUnits(ctx, units); err != nil {
		log.Fatalf("Error seeding units: %v", err)
	}

	// UnitsTeached must mirror the unit list above
	teachers := []shared.Teacher{
		{ID: "teacher-001", FirstName: "Jane", LastName: "Professor", Email: "jane@example.com", UnitsTeached: []string{"BM001", "BM002"}},
		{ID: "teacher-002", FirstName: "Alan", LastName: "Turing", Email: "turing@example.com", UnitsTeached: []string{"CS001", "MA001"}},
	}
	if err := st.SaveTeachers(ctx, teachers); err != nil {
		log.Fatalf("Error seeding teachers: %v", err)
	}

	log.Printf("Seeded %d courses, %d units, %d teachers", len(courses), len(units), len(teachers))
}

func seedStudents(ctx context.Context, st store.Store) {
	log.Println("--- Seeding Students ---")

	students := []shared.Student{
		{ID: "student-001", FirstName: "John", LastName: "Student", Email: "john@example.com", CourseCode: "BM", Year: 1},
		{ID: "student-002", FirstName: "Alice", LastName: "Wonderland", Email: "alice@example.com", CourseCode: "BM", Year: 2},
		{ID: "student-003", FirstName: "Bob", LastName: "Builder", Email: "bob@example.com", CourseCode: "CS", Year: 1},
	}
	if err := st.SaveStudents(ctx, students); err != nil {
		log.Fatalf("Error seeding students: %v", err)
	}
	log.Printf("Seeded %d students", len(students))
}

func seedWork(ctx context.Context, st store.Store) {
	log.Println("--- Seeding Assignments, Submissions & Progress ---")
	now := time.Now()

	assignments := []shared.Assignment{
		{ID: "assign-bm001-1", Name: "Management Case Study", UnitCode: "BM001", Deadline: now.AddDate(0, 0, -7), PublishedAt: now.AddDate(0, -1, 0), Status: shared.AssignmentClosed},
		{ID: "assign-bm001-2", Name: "Leadership Essay", UnitCode: "BM001", Deadline: now.AddDate(0, 0, 14), PublishedAt: now.AddDate(0, 0, -7), Status: shared.AssignmentOpen},
		{ID: "assign-bm002-1", Name: "Team Dynamics Report", UnitCode: "BM002", Deadline: now.AddDate(0, 0, 21), PublishedAt: now.AddDate(0, 0, -3), Status: shared.AssignmentOpen},
		{ID: "assign-cs001-1", Name: "Programming Exercise 1", UnitCode: "CS001", Deadline: now.AddDate(0, 0, -14), PublishedAt: now.AddDate(0, -1, 0), Status: shared.AssignmentClosed},
	}
	if err := st.SaveAssignments(ctx, assignments); err != nil {
		log.Fatalf("Error seeding assignments: %v", err)
	}

	grade82 := 82.0
	grade45 := 45.0
	submissions := []shared.StudentSubmission{
		{SubmissionID: uuid.NewString(), StudentID: "student-001", AssignmentID: "assign-bm001-1", SubmissionStatus: shared.SubmissionSubmitted, SubmissionName: "case_study.pdf", SubmittedAt: now.AddDate(0, 0, -8), Grade: &grade82, Comment: "Well structured.", GradedBy: CoordinatorID1},
		{SubmissionID: uuid.NewString(), StudentID: "student-002", AssignmentID: "assign-bm001-1", SubmissionStatus: shared.SubmissionUnsubmitted},
		{SubmissionID: uuid.NewString(), StudentID: "student-001", AssignmentID: "assign-bm001-2", SubmissionStatus: shared.SubmissionDraft, SubmissionName: "essay_draft.docx"},
		{SubmissionID: uuid.NewString(), StudentID: "student-003", AssignmentID: "assign-cs001-1", SubmissionStatus: shared.SubmissionSubmitted, SubmissionName: "exercise1.zip", SubmittedAt: now.AddDate(0, 0, -15), Grade: &grade45, GradedBy: CoordinatorID1},
	}
	if err := st.SaveSubmissions(ctx, submissions); err != nil {
		log.Fatalf("Error seeding submissions: %v", err)
	}

	progress := []shared.StudentProgress{
		{StudentID: "student-001", UnitCode: "BM001", Week1Material: shared.MaterialDone, Week2Material: shared.MaterialDone, Week3Material: shared.MaterialNotDone, Week4Material: shared.MaterialNotDone},
		{StudentID: "student-002", UnitCode: "BM001", Week1Material: shared.MaterialDone, Week2Material: shared.MaterialNotDone, Week3Material: shared.MaterialNotDone, Week4Material: shared.MaterialNotDone},
		{StudentID: "student-003", UnitCode: "CS001", Week1Material: shared.MaterialDone, Week2Material: shared.MaterialDone, Week3Material: shared.MaterialDone, Week4Material: shared.MaterialDone},
	}
	if err := st.SaveProgress(ctx, progress); err != nil {
		log.Fatalf("Error seeding progress: %v", err)
	}

	log.Printf("Seeded %d assignments, %d submissions, %d progress records", len(assignments), len(submissions), len(progress))
}
