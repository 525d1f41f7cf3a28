package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call a handler method directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateMentor inserts a mentor with the given roster (nil means empty).
// The roster is written as given, without touching the students.
func (f *Fixtures) CreateMentor(ctx context.Context, name string, roster ...primitive.ObjectID) models.Mentor {
	f.t.Helper()

	if roster == nil {
		roster = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	m := models.Mentor{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Students:  roster,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("mentors").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test mentor: %v", err)
	}
	return m
}

// CreateStudent inserts an unassigned student.
func (f *Fixtures) CreateStudent(ctx context.Context, name string) models.Student {
	f.t.Helper()
	return f.CreateStudentWithMentor(ctx, name, nil)
}

// CreateStudentWithMentor inserts a student whose back-reference points at
// mentorID. The mentor's roster is not updated; pair it with LinkRoster to
// build a consistent link, or leave it to create a broken one.
func (f *Fixtures) CreateStudentWithMentor(ctx context.Context, name string, mentorID *primitive.ObjectID) models.Student {
	f.t.Helper()

	now := time.Now().UTC()
	s := models.Student{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Mentor:    mentorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("students").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return s
}

// LinkRoster appends studentIDs to the mentor's roster as-is (duplicates allowed).
func (f *Fixtures) LinkRoster(ctx context.Context, mentorID primitive.ObjectID, studentIDs ...primitive.ObjectID) {
	f.t.Helper()

	_, err := f.db.Collection("mentors").UpdateByID(ctx, mentorID, bson.M{
		"$push": bson.M{"students": bson.M{"$each": studentIDs}},
	})
	if err != nil {
		f.t.Fatalf("failed to link roster: %v", err)
	}
}

// AssignedPair creates a mentor and a student already linked in both directions.
func (f *Fixtures) AssignedPair(ctx context.Context, mentorName, studentName string) (models.Mentor, models.Student) {
	f.t.Helper()

	m := f.CreateMentor(ctx, mentorName)
	s := f.CreateStudentWithMentor(ctx, studentName, &m.ID)
	f.LinkRoster(ctx, m.ID, s.ID)
	m.Students = append(m.Students, s.ID)
	return m, s
}

// Mentor reloads a mentor from the database.
func (f *Fixtures) Mentor(ctx context.Context, id primitive.ObjectID) models.Mentor {
	f.t.Helper()

	var m models.Mentor
	if err := f.db.Collection("mentors").FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		f.t.Fatalf("failed to load mentor %s: %v", id.Hex(), err)
	}
	return m
}

// Student reloads a student from the database.
func (f *Fixtures) Student(ctx context.Context, id primitive.ObjectID) models.Student {
	f.t.Helper()

	var s models.Student
	if err := f.db.Collection("students").FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		f.t.Fatalf("failed to load student %s: %v", id.Hex(), err)
	}
	return s
}
