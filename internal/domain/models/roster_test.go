package models_test

import (
	"testing"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUniqueIDs_KeepsFirstSeenOrder(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	got := models.UniqueIDs([]primitive.ObjectID{b, a, b, c, a})
	require.Equal(t, []primitive.ObjectID{b, a, c}, got)
}

func TestUniqueIDs_NilInput(t *testing.T) {
	got := models.UniqueIDs(nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestAppendUnique(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	tests := []struct {
		name   string
		roster []primitive.ObjectID
		add    []primitive.ObjectID
		want   []primitive.ObjectID
	}{
		{"empty roster", nil, []primitive.ObjectID{a}, []primitive.ObjectID{a}},
		{"already present", []primitive.ObjectID{a}, []primitive.ObjectID{a}, []primitive.ObjectID{a}},
		{"duplicate in add", []primitive.ObjectID{a}, []primitive.ObjectID{b, b}, []primitive.ObjectID{a, b}},
		{"existing duplicates collapsed", []primitive.ObjectID{a, a, b}, []primitive.ObjectID{c}, []primitive.ObjectID{a, b, c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, models.AppendUnique(tt.roster, tt.add...))
		})
	}
}

func TestRemoveID(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	require.Equal(t, []primitive.ObjectID{b}, models.RemoveID([]primitive.ObjectID{a, b, a}, a))
	require.Equal(t, []primitive.ObjectID{}, models.RemoveID(nil, a))
}

func TestParseIDs(t *testing.T) {
	a := primitive.NewObjectID()

	ids, invalid := models.ParseIDs([]string{a.Hex(), "nope", ""})
	require.Equal(t, []primitive.ObjectID{a}, ids)
	require.Equal(t, []string{"nope", ""}, invalid)
}

func TestStudent_Assignment(t *testing.T) {
	m := primitive.NewObjectID()

	var s models.Student
	require.False(t, s.IsAssigned())
	require.False(t, s.AssignedTo(m))

	s.Mentor = &m
	require.True(t, s.IsAssigned())
	require.True(t, s.AssignedTo(m))
	require.False(t, s.AssignedTo(primitive.NewObjectID()))
}

func TestMentor_HasStudent(t *testing.T) {
	a := primitive.NewObjectID()
	m := models.Mentor{Students: []primitive.ObjectID{a}}

	require.True(t, m.HasStudent(a))
	require.False(t, m.HasStudent(primitive.NewObjectID()))
}
