// internal/app/features/assign/handler.go
package assign

import (
	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the two assignment operations: bulk assignment of
// unassigned students and single-student reassignment.
type Handler struct {
	Assignments *assignmentstore.Store
	Mentors     *mentorstore.Store
	Audit       *auditlog.Logger
	Metrics     *metrics.Collector
	ErrLog      *errorsfeature.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, m *metrics.Collector, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db, logger),
		Mentors:     mentorstore.New(db),
		Audit:       auditLog,
		Metrics:     m,
		ErrLog:      errLog,
		Log:         logger,
	}
}
