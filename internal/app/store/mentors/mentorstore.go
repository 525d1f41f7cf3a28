// internal/app/store/mentors/mentorstore.go
package mentorstore

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

// Collection is the MongoDB collection holding mentor documents.
const Collection = "mentors"

// ErrNotFound is returned when no mentor has the requested id.
var ErrNotFound = errors.New("mentor not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create inserts a mentor with an empty roster and returns it with its new id.
func (s *Store) Create(ctx context.Context, name string) (models.Mentor, error) {
	now := time.Now().UTC()
	m := models.Mentor{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Students:  []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Mentor{}, fmt.Errorf("insert mentor: %w", err)
	}
	return m, nil
}

// GetByID returns the mentor with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Mentor, error) {
	var m models.Mentor
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Mentor{}, ErrNotFound
		}
		return models.Mentor{}, err
	}
	return normalize(m), nil
}

// Exists reports whether a mentor with the given id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every mentor ordered by folded name.
func (s *Store) List(ctx context.Context) ([]models.Mentor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Mentor{}
	for cur.Next(ctx) {
		var m models.Mentor
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, normalize(m))
	}
	return out, cur.Err()
}

// AddStudents appends ids to the roster, skipping any already present.
// $addToSet keeps the roster duplicate-free without a read-modify-write.
func (s *Store) AddStudents(ctx context.Context, mentorID primitive.ObjectID, ids ...primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	res, err := s.c.UpdateByID(ctx, mentorID, bson.M{
		"$addToSet": bson.M{"students": bson.M{"$each": ids}},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("add students to mentor %s: %w", mentorID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveStudent pulls every occurrence of studentID from the roster.
func (s *Store) RemoveStudent(ctx context.Context, mentorID, studentID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, mentorID, bson.M{
		"$pull": bson.M{"students": studentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("remove student from mentor %s: %w", mentorID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SwapRoster replaces the roster with roster only while the stored roster
// still equals expected, element for element. It reports whether the swap
// happened; false means the mentor is gone or its roster changed since it
// was read. Only the reconcile pass uses it; request handlers go through
// AddStudents and RemoveStudent.
func (s *Store) SwapRoster(ctx context.Context, mentorID primitive.ObjectID, expected, roster []primitive.ObjectID) (bool, error) {
	if roster == nil {
		roster = []primitive.ObjectID{}
	}
	filter := bson.M{"_id": mentorID, "students": expected}
	if len(expected) == 0 {
		// an empty roster may also be stored as null or be absent
		filter = bson.M{"_id": mentorID, "$or": bson.A{
			bson.M{"students": nil},
			bson.M{"students": bson.M{"$size": 0}},
		}}
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"students": roster, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return false, fmt.Errorf("swap roster of mentor %s: %w", mentorID.Hex(), err)
	}
	return res.MatchedCount == 1, nil
}

// ForEach streams every mentor to fn in _id order. Iteration stops at the
// first error returned by fn.
func (s *Store) ForEach(ctx context.Context, fn func(models.Mentor) error) error {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var m models.Mentor
		if err := cur.Decode(&m); err != nil {
			return err
		}
		if err := fn(normalize(m)); err != nil {
			return err
		}
	}
	return cur.Err()
}

func normalize(m models.Mentor) models.Mentor {
	if m.Students == nil {
		m.Students = []primitive.ObjectID{}
	}
	return m
}
