// internal/app/features/roster/handler.go
package roster

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the two relationship queries.
type Handler struct {
	Assignments *assignmentstore.Store
	ErrLog      *errorsfeature.ErrorLogger
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db, logger),
		ErrLog:      errLog,
		Log:         logger,
	}
}

// ServeMentorStudents handles GET /mentor-students/{mentorId}: the mentor's
// roster as full student records, in roster order.
func (h *Handler) ServeMentorStudents(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := apiutil.PathID(r, "mentorId")
	if !ok {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Assignments.MentorStudents(ctx, mentorID)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "Failed to fetch mentor students")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, list)
}

// ServeStudentMentor handles GET /student-mentor/{studentId}. The body is
// the mentor, or null when the student has none.
func (h *Handler) ServeStudentMentor(w http.ResponseWriter, r *http.Request) {
	studentID, ok := apiutil.PathID(r, "studentId")
	if !ok {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgStudentNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Assignments.StudentMentor(ctx, studentID)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "Failed to fetch student mentor")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, m)
}
