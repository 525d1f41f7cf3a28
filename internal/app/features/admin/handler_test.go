package admin_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/features/admin"
	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeReconciler struct {
	report  assignmentstore.ReconcileReport
	err     error
	trigger string
}

func (f *fakeReconciler) RunOnce(ctx context.Context, trigger string) (assignmentstore.ReconcileReport, error) {
	f.trigger = trigger
	return f.report, f.err
}

func TestServeReconcile(t *testing.T) {
	fake := &fakeReconciler{report: assignmentstore.ReconcileReport{
		MentorsScanned:  2,
		StudentsScanned: 3,
		Cleared:         []assignmentstore.ClearedReference{{StudentID: primitive.NewObjectID(), MentorID: primitive.NewObjectID()}},
		Repaired:        []assignmentstore.RosterRepair{},
	}}
	h := admin.NewHandler(fake, nil, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeReconcile(rec, testutil.NewJSONRequest(t, http.MethodPost, "/admin/reconcile", nil))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"mentors_scanned":2`)
	rec.AssertContains(t, `"repaired":[]`)
	if fake.trigger != "admin" {
		t.Errorf("trigger: got %q, want %q", fake.trigger, "admin")
	}
}

func TestServeReconcile_Failure(t *testing.T) {
	fake := &fakeReconciler{err: errors.New("connection reset")}
	h := admin.NewHandler(fake, nil, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeReconcile(rec, testutil.NewJSONRequest(t, http.MethodPost, "/admin/reconcile", nil))

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, "Failed to reconcile assignments")
}

func TestServeBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events := audit.New(db)
	sid := primitive.NewObjectID()
	for _, e := range []audit.Event{
		{EventType: audit.EventStudentAssigned, StudentID: &sid, BatchID: "batch-1"},
		{EventType: audit.EventStudentAssigned, BatchID: "batch-2"},
	} {
		if err := events.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	h := admin.NewHandler(nil, events, errorsfeature.NewErrorLogger(zap.NewNop()), zap.NewNop())

	req := testutil.WithChiURLParam(testutil.NewJSONRequest(t, http.MethodGet, "/admin/batches/batch-1", nil), "batchId", "batch-1")
	rec := testutil.NewRecorder()
	h.ServeBatch(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	var got []audit.Event
	rec.DecodeJSON(t, &got)
	if len(got) != 1 || got[0].StudentID == nil || *got[0].StudentID != sid {
		t.Errorf("unexpected batch events: %+v", got)
	}

	req = testutil.WithChiURLParam(testutil.NewJSONRequest(t, http.MethodGet, "/admin/batches/none", nil), "batchId", "none")
	rec = testutil.NewRecorder()
	h.ServeBatch(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "[]")
}
