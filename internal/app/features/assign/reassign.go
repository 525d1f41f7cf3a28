// internal/app/features/assign/reassign.go
package assign

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type reassignRequest struct {
	MentorID string `json:"mentorId"`
}

// ServeReassign handles POST /assign-student/{studentId}.
//
// The student is removed from its previous mentor's roster (if any) and
// added to the target's. The target mentor is checked before the student.
func (h *Handler) ServeReassign(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		errorsfeature.BadBody(w)
		return
	}
	mentorID, err := primitive.ObjectIDFromHex(req.MentorID)
	if err != nil {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	studentID, ok := apiutil.PathID(r, "studentId")
	if !ok {
		// still report a missing mentor first
		exists, err := h.Mentors.Exists(ctx, mentorID)
		switch {
		case err != nil:
			h.ErrLog.ServerError(w, r, err, "Failed to assign student")
		case !exists:
			apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
		default:
			apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgStudentNotFound)
		}
		return
	}

	res, err := h.Assignments.Reassign(ctx, studentID, mentorID)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "Failed to assign student",
			zap.String("student_id", studentID.Hex()),
			zap.String("mentor_id", mentorID.Hex()))
		return
	}

	h.Metrics.RecordReassign(res.Changed)
	if res.Changed {
		h.Audit.StudentReassigned(ctx, r, mentorID, studentID, res.PreviousMentorID)
	}

	apiutil.WriteMessage(w, http.StatusOK, "Student assigned to mentor")
}
