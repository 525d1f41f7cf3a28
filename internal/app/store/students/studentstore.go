// internal/app/store/students/studentstore.go
package studentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the MongoDB collection holding student documents.
const Collection = "students"

// ErrNotFound is returned when no student has the requested id.
var ErrNotFound = errors.New("student not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts an unassigned student and returns it with its new id.
func (s *Store) Create(ctx context.Context, name string) (models.Student, error) {
	st := newStudent(name, time.Now().UTC())
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		return models.Student{}, fmt.Errorf("insert student: %w", err)
	}
	return st, nil
}

// CreateMany inserts one unassigned student per name, in order.
func (s *Store) CreateMany(ctx context.Context, names []string) ([]models.Student, error) {
	if len(names) == 0 {
		return []models.Student{}, nil
	}

	now := time.Now().UTC()
	out := make([]models.Student, 0, len(names))
	docs := make([]interface{}, 0, len(names))
	for _, n := range names {
		st := newStudent(n, now)
		out = append(out, st)
		docs = append(docs, st)
	}

	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("insert students: %w", err)
	}
	return out, nil
}

func newStudent(name string, now time.Time) models.Student {
	return models.Student{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Mentor:    nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetByID returns the student with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Student{}, ErrNotFound
		}
		return models.Student{}, err
	}
	return st, nil
}

// List returns students ordered by folded name. With unassignedOnly set,
// only students without a mentor are returned.
func (s *Store) List(ctx context.Context, unassignedOnly bool) ([]models.Student, error) {
	filter := bson.M{}
	if unassignedOnly {
		filter["mentor"] = nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	return s.find(ctx, filter, opts)
}

// ByIDs returns the students whose ids appear in ids, ordered as in ids.
// Unknown ids are omitted; repeated ids yield the student once.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Student, error) {
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return []models.Student{}, nil
	}

	found, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Student, len(found))
	for _, st := range found {
		byID[st.ID] = st
	}
	out := make([]models.Student, 0, len(found))
	for _, id := range ids {
		if st, ok := byID[id]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

// UnassignedIDs returns the subset of ids naming existing students that
// have no mentor. A null and a missing mentor field both count as unassigned.
func (s *Store) UnassignedIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return []primitive.ObjectID{}, nil
	}

	found, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}, "mentor": nil},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}

	set := make(map[primitive.ObjectID]struct{}, len(found))
	for _, st := range found {
		set[st.ID] = struct{}{}
	}
	out := make([]primitive.ObjectID, 0, len(found))
	for _, id := range ids {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// AssignIfUnassigned points the student at mentorID only when it has no
// mentor yet. It reports whether the student was claimed, so two concurrent
// bulk assignments cannot both take the same student.
func (s *Store) AssignIfUnassigned(ctx context.Context, studentID, mentorID primitive.ObjectID) (bool, error) {
	return s.SetMentorIf(ctx, studentID, nil, &mentorID)
}

// SetMentorIf overwrites the student's back-reference only while it still
// equals expected (nil matches a null or missing reference). A nil mentorID
// clears it. The result is false when the student is unknown or its
// reference has already moved on.
func (s *Store) SetMentorIf(ctx context.Context, studentID primitive.ObjectID, expected, mentorID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": studentID, "mentor": nil}
	if expected != nil {
		filter["mentor"] = *expected
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"mentor": mentorID, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return false, fmt.Errorf("set mentor of student %s: %w", studentID.Hex(), err)
	}
	return res.MatchedCount == 1, nil
}

// IDsReferencing returns, in _id order, the students whose back-reference
// names mentorID.
func (s *Store) IDsReferencing(ctx context.Context, mentorID primitive.ObjectID) ([]primitive.ObjectID, error) {
	found, err := s.find(ctx, bson.M{"mentor": mentorID}, options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]primitive.ObjectID, 0, len(found))
	for _, st := range found {
		out = append(out, st.ID)
	}
	return out, nil
}

// ForEachAssigned streams every student that references some mentor.
func (s *Store) ForEachAssigned(ctx context.Context, fn func(models.Student) error) error {
	cur, err := s.c.Find(ctx, bson.M{"mentor": bson.M{"$ne": nil}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var st models.Student
		if err := cur.Decode(&st); err != nil {
			return err
		}
		if err := fn(st); err != nil {
			return err
		}
	}
	return cur.Err()
}

func (s *Store) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Student, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Student{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
