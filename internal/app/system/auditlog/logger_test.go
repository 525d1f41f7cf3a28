package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_NilLogger(t *testing.T) {
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.MentorCreated(ctx, req, primitive.NewObjectID())
	logger.StudentReassigned(ctx, req, primitive.NewObjectID(), primitive.NewObjectID(), nil)
	logger.RosterRepaired(ctx, "batch", primitive.NewObjectID(), 2, 1)
}

func TestLogger_Modes(t *testing.T) {
	tests := []struct {
		mode   string
		wantDB bool
		wantZ  bool
	}{
		{auditlog.ModeAll, true, true},
		{auditlog.ModeDB, true, false},
		{auditlog.ModeLog, false, true},
		{auditlog.ModeOff, false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		t.Run("mode="+tt.mode, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			store := audit.New(db)
			core, logs := observer.New(zap.InfoLevel)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			logger := auditlog.New(store, zap.New(core), auditlog.Config{Mode: tt.mode})
			studentID := primitive.NewObjectID()
			logger.StudentCreated(ctx, nil, studentID)

			events, err := store.ByStudent(ctx, studentID, 10)
			if err != nil {
				t.Fatalf("ByStudent failed: %v", err)
			}
			if gotDB := len(events) == 1; gotDB != tt.wantDB {
				t.Errorf("stored: got %v, want %v", gotDB, tt.wantDB)
			}
			if gotZ := logs.FilterMessage("audit event").Len() == 1; gotZ != tt.wantZ {
				t.Errorf("logged: got %v, want %v", gotZ, tt.wantZ)
			}
		})
	}
}

func TestLogger_StudentReassigned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Mode: auditlog.ModeDB})
	req := httptest.NewRequest("POST", "/assign-student/x", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.7")

	studentID := primitive.NewObjectID()
	first, second := primitive.NewObjectID(), primitive.NewObjectID()
	logger.StudentReassigned(ctx, req, first, studentID, nil)
	logger.StudentReassigned(ctx, req, second, studentID, &first)

	events, err := store.ByStudent(ctx, studentID, 10)
	if err != nil {
		t.Fatalf("ByStudent failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	types := map[string]audit.Event{}
	for _, e := range events {
		types[e.EventType] = e
	}
	assigned, ok := types[audit.EventStudentAssigned]
	if !ok || assigned.PreviousMentorID != nil {
		t.Errorf("expected student_assigned without previous mentor, got %+v", assigned)
	}
	moved, ok := types[audit.EventStudentReassigned]
	if !ok || moved.PreviousMentorID == nil || *moved.PreviousMentorID != first {
		t.Errorf("expected student_reassigned from %v, got %+v", first, moved)
	}
	if moved.IP != "10.0.0.7" {
		t.Errorf("IP: got %q, want %q", moved.IP, "10.0.0.7")
	}
}

func TestLogger_StudentsImported(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{Mode: auditlog.ModeDB})
	batchID := auditlog.NewBatchID()
	logger.StudentsImported(ctx, nil, batchID, "roster.xlsx", 12)

	events, err := store.ByBatch(ctx, batchID)
	if err != nil {
		t.Fatalf("ByBatch failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Details["filename"] != "roster.xlsx" || events[0].Details["count"] != "12" {
		t.Errorf("details: got %v", events[0].Details)
	}
}
