// internal/app/features/mentors/handler.go
package mentors

import (
	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	mentorstore "github.com/dalemusser/mentorhub/internal/app/store/mentors"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves mentor creation and lookups.
type Handler struct {
	Mentors *mentorstore.Store
	Audit   *auditlog.Logger
	ErrLog  *errorsfeature.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, audit *auditlog.Logger, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Mentors: mentorstore.New(db),
		Audit:   audit,
		ErrLog:  errLog,
		Log:     logger,
	}
}
