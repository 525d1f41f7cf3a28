// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destinations accepted by Config.Mode.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off"
)

// Config holds audit logging configuration.
type Config struct {
	Mode string
}

// Logger records assignment audit events to MongoDB and/or zap.
// A nil *Logger is valid and records nothing.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	if config.Mode == "" {
		config.Mode = ModeAll
	}
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// NewBatchID returns an id shared by the events of one request.
func NewBatchID() string {
	return uuid.New().String()
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("event_type", event.EventType),
	}
	if event.BatchID != "" {
		fields = append(fields, zap.String("batch_id", event.BatchID))
	}
	if event.MentorID != nil {
		fields = append(fields, zap.String("mentor_id", event.MentorID.Hex()))
	}
	if event.StudentID != nil {
		fields = append(fields, zap.String("student_id", event.StudentID.Hex()))
	}
	if event.PreviousMentorID != nil {
		fields = append(fields, zap.String("previous_mentor_id", event.PreviousMentorID.Hex()))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}
	l.zapLog.Info("audit event", fields...)
}

// Log records an audit event according to the configured mode.
// Storage failures are logged and swallowed.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil || l.config.Mode == ModeOff {
		return
	}

	if l.config.Mode == ModeAll || l.config.Mode == ModeLog {
		l.logToZap(event)
	}

	if (l.config.Mode == ModeAll || l.config.Mode == ModeDB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// MentorCreated logs creation of a mentor.
func (l *Logger) MentorCreated(ctx context.Context, r *http.Request, mentorID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		EventType: audit.EventMentorCreated,
		MentorID:  &mentorID,
		IP:        getClientIP(r),
	})
}

// StudentCreated logs creation of a student.
func (l *Logger) StudentCreated(ctx context.Context, r *http.Request, studentID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		EventType: audit.EventStudentCreated,
		StudentID: &studentID,
		IP:        getClientIP(r),
	})
}

// StudentAssigned logs a previously unassigned student joining a roster.
func (l *Logger) StudentAssigned(ctx context.Context, r *http.Request, batchID string, mentorID, studentID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		EventType: audit.EventStudentAssigned,
		BatchID:   batchID,
		MentorID:  &mentorID,
		StudentID: &studentID,
		IP:        getClientIP(r),
	})
}

// StudentReassigned logs a student moving from prev (may be nil) to mentorID.
func (l *Logger) StudentReassigned(ctx context.Context, r *http.Request, mentorID, studentID primitive.ObjectID, prev *primitive.ObjectID) {
	eventType := audit.EventStudentReassigned
	if prev == nil {
		eventType = audit.EventStudentAssigned
	}
	l.Log(ctx, audit.Event{
		EventType:        eventType,
		MentorID:         &mentorID,
		StudentID:        &studentID,
		PreviousMentorID: prev,
		IP:               getClientIP(r),
	})
}

// StudentsImported logs a spreadsheet import.
func (l *Logger) StudentsImported(ctx context.Context, r *http.Request, batchID, filename string, count int) {
	l.Log(ctx, audit.Event{
		EventType: audit.EventStudentsImported,
		BatchID:   batchID,
		IP:        getClientIP(r),
		Details: map[string]string{
			"filename": filename,
			"count":    strconv.Itoa(count),
		},
	})
}

// DanglingMentorCleared logs the reconcile pass detaching a student from a
// mentor that no longer exists.
func (l *Logger) DanglingMentorCleared(ctx context.Context, batchID string, studentID, missingMentorID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		EventType:        audit.EventDanglingMentorCleared,
		BatchID:          batchID,
		StudentID:        &studentID,
		PreviousMentorID: &missingMentorID,
	})
}

// RosterRepaired logs the reconcile pass rewriting a mentor's roster.
func (l *Logger) RosterRepaired(ctx context.Context, batchID string, mentorID primitive.ObjectID, before, after int) {
	l.Log(ctx, audit.Event{
		EventType: audit.EventRosterRepaired,
		BatchID:   batchID,
		MentorID:  &mentorID,
		Details: map[string]string{
			"before": strconv.Itoa(before),
			"after":  strconv.Itoa(after),
		},
	})
}
