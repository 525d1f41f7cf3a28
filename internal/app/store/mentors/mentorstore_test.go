package mentorstore_test

import (
	"errors"
	"testing"

	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m, err := store.Create(ctx, "Ada")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if m.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if m.Students == nil || len(m.Students) != 0 {
		t.Errorf("expected empty non-nil roster, got %v", m.Students)
	}
	if m.NameCI != "ada" {
		t.Errorf("NameCI: got %q, want %q", m.NameCI, "ada")
	}

	found, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Name != "Ada" {
		t.Errorf("Name: got %q, want %q", found.Name, "Ada")
	}
	if found.Students == nil {
		t.Error("expected stored roster to decode as empty slice")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if !errors.Is(err, mentorstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_List_SortedByFoldedName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, n := range []string{"carol", "alvin", "Bea"} {
		if _, err := store.Create(ctx, n); err != nil {
			t.Fatalf("Create(%q) failed: %v", n, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 mentors, got %d", len(list))
	}
	want := []string{"alvin", "Bea", "carol"}
	for i, m := range list {
		if m.Name != want[i] {
			t.Errorf("list[%d]: got %q, want %q", i, m.Name, want[i])
		}
	}
}

func TestStore_AddStudents_NoDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fixtures.CreateMentor(ctx, "Ada")
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	if err := store.AddStudents(ctx, m.ID, a, b); err != nil {
		t.Fatalf("AddStudents failed: %v", err)
	}
	if err := store.AddStudents(ctx, m.ID, b, a); err != nil {
		t.Fatalf("AddStudents (again) failed: %v", err)
	}

	got := fixtures.Mentor(ctx, m.ID).Students
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("roster: got %v, want [%v %v]", got, a, b)
	}
}

func TestStore_AddStudents_UnknownMentor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.AddStudents(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, mentorstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_RemoveStudent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	m := fixtures.CreateMentor(ctx, "Ada", a, b, a)

	if err := store.RemoveStudent(ctx, m.ID, a); err != nil {
		t.Fatalf("RemoveStudent failed: %v", err)
	}

	got := fixtures.Mentor(ctx, m.ID).Students
	if len(got) != 1 || got[0] != b {
		t.Errorf("roster: got %v, want [%v]", got, b)
	}
}

func TestStore_SwapRoster(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	m := fixtures.CreateMentor(ctx, "Ada", a, a)

	ok, err := store.SwapRoster(ctx, m.ID, []primitive.ObjectID{a, a}, []primitive.ObjectID{a, b})
	if err != nil || !ok {
		t.Fatalf("SwapRoster(current) = %v, %v; want true, nil", ok, err)
	}

	// the roster has moved on, so a swap based on the old read must not land
	ok, err = store.SwapRoster(ctx, m.ID, []primitive.ObjectID{a, a}, nil)
	if err != nil || ok {
		t.Fatalf("SwapRoster(stale) = %v, %v; want false, nil", ok, err)
	}
	got := fixtures.Mentor(ctx, m.ID).Students
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("roster: got %v, want [%v %v]", got, a, b)
	}

	ok, err = store.SwapRoster(ctx, m.ID, []primitive.ObjectID{a, b}, nil)
	if err != nil || !ok {
		t.Fatalf("SwapRoster(to empty) = %v, %v; want true, nil", ok, err)
	}
	reloaded, err := store.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got := reloaded.Students; got == nil || len(got) != 0 {
		t.Errorf("expected empty roster, got %v", reloaded.Students)
	}
}

func TestStore_SwapRoster_EmptyExpected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fixtures.CreateMentor(ctx, "Ada")
	if _, err := db.Collection(mentorstore.Collection).UpdateByID(ctx, m.ID, bson.M{"$unset": bson.M{"students": ""}}); err != nil {
		t.Fatalf("unset roster: %v", err)
	}

	st := primitive.NewObjectID()
	ok, err := store.SwapRoster(ctx, m.ID, []primitive.ObjectID{}, []primitive.ObjectID{st})
	if err != nil || !ok {
		t.Fatalf("SwapRoster(missing roster) = %v, %v; want true, nil", ok, err)
	}
	if got := fixtures.Mentor(ctx, m.ID).Students; len(got) != 1 || got[0] != st {
		t.Errorf("roster: got %v, want [%v]", got, st)
	}

	ok, err = store.SwapRoster(ctx, primitive.NewObjectID(), nil, nil)
	if err != nil || ok {
		t.Errorf("SwapRoster(unknown) = %v, %v; want false, nil", ok, err)
	}
}

func TestStore_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mentorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	m := fixtures.CreateMentor(ctx, "Ada")

	ok, err := store.Exists(ctx, m.ID)
	if err != nil || !ok {
		t.Errorf("Exists(known) = %v, %v; want true, nil", ok, err)
	}
	ok, err = store.Exists(ctx, primitive.NewObjectID())
	if err != nil || ok {
		t.Errorf("Exists(unknown) = %v, %v; want false, nil", ok, err)
	}
}
