// internal/domain/models/mentor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mentor owns an ordered roster of student references.
//
// NOTE:
//   - Students is the forward half of the mentor/student link; the back
//     half is Student.Mentor. Both are written by the assignments store.
//   - Students is never nil once a mentor is created, so it serializes as [].
type Mentor struct {
	ID        primitive.ObjectID   `bson:"_id" json:"id"`
	Name      string               `bson:"name" json:"name"`
	NameCI    string               `bson:"name_ci" json:"-"`
	Students  []primitive.ObjectID `bson:"students" json:"students"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// HasStudent reports whether id is on the mentor's roster.
func (m Mentor) HasStudent(id primitive.ObjectID) bool {
	return ContainsID(m.Students, id)
}
