// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding assignment audit events.
const Collection = "assignment_events"

// Event types
const (
	EventMentorCreated     = "mentor_created"
	EventStudentCreated    = "student_created"
	EventStudentAssigned   = "student_assigned"
	EventStudentReassigned = "student_reassigned"
	EventStudentsImported  = "students_imported"

	// Written by the reconcile pass.
	EventDanglingMentorCleared = "dangling_mentor_cleared"
	EventRosterRepaired        = "roster_repaired"
)

// Event is one recorded change to a mentor/student link.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	EventType string             `bson:"event_type" json:"event_type"`

	// BatchID groups the events written by one request (bulk assign, import).
	BatchID string `bson:"batch_id,omitempty" json:"batch_id,omitempty"`

	MentorID         *primitive.ObjectID `bson:"mentor_id,omitempty" json:"mentor_id,omitempty"`
	StudentID        *primitive.ObjectID `bson:"student_id,omitempty" json:"student_id,omitempty"`
	PreviousMentorID *primitive.ObjectID `bson:"previous_mentor_id,omitempty" json:"previous_mentor_id,omitempty"`

	IP string `bson:"ip,omitempty" json:"-"`

	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// ByStudent returns the most recent events touching a student, newest first.
func (s *Store) ByStudent(ctx context.Context, studentID primitive.ObjectID, limit int64) ([]Event, error) {
	return s.query(ctx, bson.M{"student_id": studentID}, limit)
}

// ByBatch returns every event written under one batch id, oldest first.
func (s *Store) ByBatch(ctx context.Context, batchID string) ([]Event, error) {
	cur, err := s.c.Find(ctx, bson.M{"batch_id": batchID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) query(ctx context.Context, filter bson.M, limit int64) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
