// ============================================================================
// backend/internal/store/mongo.go
// MongoDB-backed record store
// ============================================================================

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"uniportal/backend/internal/shared"
)

const queryTimeout = 10 * time.Second

// MongoStore implements Store on top of a MongoDB database. Each collection
// is read and replaced wholesale: the dataset is small (a single faculty's
// records) and whole-collection replace keeps the adapter surface identical
// to the flat-file store it replaces.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a MongoStore over the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// loadAll reads every document of a collection, sorted by _id for stable
// ordering across reads.
func loadAll[T any](ctx context.Context, db *mongo.Database, collection string) ([]T, error) {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := db.Collection(collection).Find(queryCtx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(queryCtx)

	var records []T
	if err := cursor.All(queryCtx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}

	return records, nil
}

// replaceAll replaces the entire contents of a collection. The delete and
// insert run back to back on the same connection; with a single writer this
// is atomic enough for the engine's snapshot-mutate-persist discipline.
func replaceAll[T any](ctx context.Context, db *mongo.Database, collection string, records []T) error {
	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	col := db.Collection(collection)

	if _, err := col.DeleteMany(queryCtx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear %s: %w", collection, err)
	}

	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	for i := range records {
		docs[i] = records[i]
	}

	if _, err := col.InsertMany(queryCtx, docs); err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}

	return nil
}

func (s *MongoStore) LoadCourses(ctx context.Context) ([]shared.Course, error) {
	return loadAll[shared.Course](ctx, s.db, CollectionCourses)
}

func (s *MongoStore) SaveCourses(ctx context.Context, courses []shared.Course) error {
	return replaceAll(ctx, s.db, CollectionCourses, courses)
}

func (s *MongoStore) LoadUnits(ctx context.Context) ([]shared.Unit, error) {
	return loadAll[shared.Unit](ctx, s.db, CollectionUnits)
}

func (s *MongoStore) SaveUnits(ctx context.Context, units []shared.Unit) error {
	return replaceAll(ctx, s.db, CollectionUnits, units)
}

func (s *MongoStore) LoadTeachers(ctx context.Context) ([]shared.Teacher, error) {
	return loadAll[shared.Teacher](ctx, s.db, CollectionTeachers)
}

func (s *MongoStore) SaveTeachers(ctx context.Context, teachers []shared.Teacher) error {
	return replaceAll(ctx, s.db, CollectionTeachers, teachers)
}

func (s *MongoStore) LoadCoordinators(ctx context.Context) ([]shared.Coordinator, error) {
	return loadAll[shared.Coordinator](ctx, s.db, CollectionCoordinators)
}

func (s *MongoStore) SaveCoordinators(ctx context.Context, coordinators []shared.Coordinator) error {
	return replaceAll(ctx, s.db, CollectionCoordinators, coordinators)
}

func (s *MongoStore) LoadStudents(ctx context.Context) ([]shared.Student, error) {
	return loadAll[shared.Student](ctx, s.db, CollectionStudents)
}

func (s *MongoStore) SaveStudents(ctx context.Context, students []shared.Student) error {
	return replaceAll(ctx, s.db, CollectionStudents, students)
}

func (s *MongoStore) LoadAssignments(ctx context.Context) ([]shared.Assignment, error) {
	return loadAll[shared.Assignment](ctx, s.db, CollectionAssignments)
}

func (s *MongoStore) SaveAssignments(ctx context.Context, assignments []shared.Assignment) error {
	return replaceAll(ctx, s.db, CollectionAssignments, assignments)
}

func (s *MongoStore) LoadSubmissions(ctx context.Context) ([]shared.StudentSubmission, error) {
	return loadAll[shared.StudentSubmission](ctx, s.db, CollectionSubmissions)
}

func (s *MongoStore) SaveSubmissions(ctx context.Context, submissions []shared.StudentSubmission) error {
	return replaceAll(ctx, s.db, CollectionSubmissions, submissions)
}

func (s *MongoStore) LoadProgress(ctx context.Context) ([]shared.StudentProgress, error) {
	return loadAll[shared.StudentProgress](ctx, s.db, CollectionProgress)
}

func (s *MongoStore) SaveProgress(ctx context.Context, progress []shared.StudentProgress) error {
	return replaceAll(ctx, s.db, CollectionProgress, progress)
}
