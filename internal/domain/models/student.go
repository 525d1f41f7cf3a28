// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student belongs to at most one mentor. Mentor is nil (stored as null)
// while the student is unassigned.
type Student struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	Name      string              `bson:"name" json:"name"`
	NameCI    string              `bson:"name_ci" json:"-"`
	Mentor    *primitive.ObjectID `bson:"mentor" json:"mentor"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// IsAssigned reports whether the student currently references a mentor.
func (s Student) IsAssigned() bool {
	return s.Mentor != nil && !s.Mentor.IsZero()
}

// AssignedTo reports whether the student references the given mentor.
func (s Student) AssignedTo(mentorID primitive.ObjectID) bool {
	return s.IsAssigned() && *s.Mentor == mentorID
}
