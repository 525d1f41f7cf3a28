// internal/app/features/students/handler.go
package students

import (
	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	studentstore "github.com/dalemusser/mentorhub/internal/app/store/students"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves student creation, lookups, history, and roster imports.
type Handler struct {
	Students    *studentstore.Store
	Mentors     *mentorstore.Store
	Assignments *assignmentstore.Store
	Events      *audit.Store
	Audit       *auditlog.Logger
	Metrics     *metrics.Collector
	ErrLog      *errorsfeature.ErrorLogger
	Log         *zap.Logger

	// MaxImportRows caps the names accepted from one workbook.
	MaxImportRows int
}

func NewHandler(db *mongo.Database, auditLog *auditlog.Logger, m *metrics.Collector, errLog *errorsfeature.ErrorLogger, maxImportRows int, logger *zap.Logger) *Handler {
	return &Handler{
		Students:      studentstore.New(db),
		Mentors:       mentorstore.New(db),
		Assignments:   assignmentstore.New(db, logger),
		Events:        audit.New(db),
		Audit:         auditLog,
		Metrics:       m,
		ErrLog:        errLog,
		Log:           logger,
		MaxImportRows: maxImportRows,
	}
}
