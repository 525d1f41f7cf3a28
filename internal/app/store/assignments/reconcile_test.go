package assignmentstore_test

import (
	"context"
	"testing"

	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestDesiredRoster(t *testing.T) {
	a, b, c, d := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	tests := []struct {
		name     string
		roster   []primitive.ObjectID
		backRefs []primitive.ObjectID
		want     []primitive.ObjectID
	}{
		{"consistent", []primitive.ObjectID{a, b}, []primitive.ObjectID{b, a}, []primitive.ObjectID{a, b}},
		{"duplicate entry", []primitive.ObjectID{a, b, a}, []primitive.ObjectID{a, b}, []primitive.ObjectID{a, b}},
		{"stale entry", []primitive.ObjectID{a, c, b}, []primitive.ObjectID{a, b}, []primitive.ObjectID{a, b}},
		{"missing entry", []primitive.ObjectID{a}, []primitive.ObjectID{a, d}, []primitive.ObjectID{a, d}},
		{"empty", nil, nil, []primitive.ObjectID{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, assignmentstore.DesiredRoster(tt.roster, tt.backRefs))
		})
	}
}

func TestReconcile_CleanDataUnchanged(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.AssignedPair(ctx, "Ada", "Lin")
	fixtures.CreateStudent(ctx, "Free")

	report, err := store.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if !report.Clean() {
		t.Errorf("expected clean report, got %+v", report)
	}
	if report.MentorsScanned != 1 || report.StudentsScanned != 1 {
		t.Errorf("scanned: mentors=%d students=%d", report.MentorsScanned, report.StudentsScanned)
	}
}

func TestReconcile_RepairsDivergence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ada := fixtures.CreateMentor(ctx, "Ada")
	bea := fixtures.CreateMentor(ctx, "Bea")

	// Lin points at Ada but only Bea lists Lin, twice.
	lin := fixtures.CreateStudentWithMentor(ctx, "Lin", &ada.ID)
	fixtures.LinkRoster(ctx, bea.ID, lin.ID, lin.ID)

	// Mo points at a mentor that is gone.
	gone := primitive.NewObjectID()
	mo := fixtures.CreateStudentWithMentor(ctx, "Mo", &gone)

	report, err := store.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(report.Cleared) != 1 || report.Cleared[0].StudentID != mo.ID || report.Cleared[0].MentorID != gone {
		t.Errorf("Cleared: got %+v", report.Cleared)
	}
	if len(report.Repaired) != 2 {
		t.Errorf("Repaired: got %+v, want 2 entries", report.Repaired)
	}

	if fixtures.Student(ctx, mo.ID).IsAssigned() {
		t.Error("expected dangling reference to be cleared")
	}
	if got := fixtures.Mentor(ctx, ada.ID).Students; len(got) != 1 || got[0] != lin.ID {
		t.Errorf("Ada roster: got %v, want [%v]", got, lin.ID)
	}
	if got := fixtures.Mentor(ctx, bea.ID).Students; len(got) != 0 {
		t.Errorf("Bea roster: got %v, want empty", got)
	}

	again, err := store.Reconcile(ctx)
	if err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	if !again.Clean() {
		t.Errorf("second pass should be clean, got %+v", again)
	}
}

func TestReconcile_MentorCreatedDuringPass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.AssignedPair(ctx, "Ada", "Lin")
	mo := fixtures.CreateStudent(ctx, "Mo")

	// Bea is created and Mo assigned to her after mentors were scanned, so
	// the student scan sees Mo pointing at a mentor the pass never saw.
	var bea models.Mentor
	assignmentstore.SetReconcileHooks(store, func() {
		bea = fixtures.CreateMentor(ctx, "Bea")
		if _, err := store.Reassign(ctx, mo.ID, bea.ID); err != nil {
			t.Fatalf("Reassign during pass failed: %v", err)
		}
	}, nil)

	report, err := store.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(report.Cleared) != 0 {
		t.Errorf("Cleared: got %+v, want none", report.Cleared)
	}
	if report.Deferred != 1 {
		t.Errorf("Deferred: got %d, want 1", report.Deferred)
	}

	if !fixtures.Student(ctx, mo.ID).AssignedTo(bea.ID) {
		t.Error("valid reference was cleared")
	}
	if got := fixtures.Mentor(ctx, bea.ID).Students; len(got) != 1 || got[0] != mo.ID {
		t.Errorf("Bea roster: got %v, want [%v]", got, mo.ID)
	}
}

func TestReconcile_RosterChangedDuringPass(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Ada lists a student that does not point back, so she needs a repair.
	stale := fixtures.CreateStudent(ctx, "Stale")
	ada := fixtures.CreateMentor(ctx, "Ada", stale.ID)
	lin := fixtures.CreateStudent(ctx, "Lin")

	assignmentstore.SetReconcileHooks(store, nil, func() {
		if _, err := store.AssignUnassigned(ctx, ada.ID, []primitive.ObjectID{lin.ID}); err != nil {
			t.Fatalf("AssignUnassigned during pass failed: %v", err)
		}
	})

	report, err := store.Reconcile(ctx)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(report.Repaired) != 0 || report.Deferred != 1 {
		t.Errorf("report: repaired=%+v deferred=%d, want none and 1", report.Repaired, report.Deferred)
	}
	roster := fixtures.Mentor(ctx, ada.ID).Students
	if !models.ContainsID(roster, lin.ID) {
		t.Fatalf("concurrent assignment was undone: roster %v", roster)
	}

	assignmentstore.SetReconcileHooks(store, nil, nil)
	if _, err := store.Reconcile(ctx); err != nil {
		t.Fatalf("second Reconcile failed: %v", err)
	}
	if got := fixtures.Mentor(ctx, ada.ID).Students; len(got) != 1 || got[0] != lin.ID {
		t.Errorf("Ada roster after second pass: got %v, want [%v]", got, lin.ID)
	}
}

func TestReconcile_FailureReportsOnlyAppliedWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := assignmentstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gone := primitive.NewObjectID()
	mo := fixtures.CreateStudentWithMentor(ctx, "Mo", &gone)

	passCtx, stop := context.WithCancel(ctx)
	defer stop()
	assignmentstore.SetReconcileHooks(store, nil, stop)

	report, err := store.Reconcile(passCtx)
	if err == nil {
		t.Fatal("expected Reconcile to fail once its context is cancelled")
	}
	if len(report.Cleared) != 0 {
		t.Errorf("Cleared: got %+v, want none", report.Cleared)
	}
	if !fixtures.Student(ctx, mo.ID).AssignedTo(gone) {
		t.Error("reference should be untouched after a failed pass")
	}
}
