// internal/app/features/assign/bulk.go
package assign

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type bulkRequest struct {
	StudentIDs []string `json:"studentIds"`
}

type bulkResponse struct {
	Message  string               `json:"message"`
	Assigned []primitive.ObjectID `json:"assigned"`
	// Skipped lists candidates left alone: already assigned, unknown, or
	// not a well-formed id. Values are echoed as sent.
	Skipped []string `json:"skipped"`
}

// ServeBulkAssign handles POST /assign/{mentorId}.
//
// Every candidate that exists and has no mentor is linked to the mentor.
// Students that already have a mentor, this one included, are skipped,
// never moved.
func (h *Handler) ServeBulkAssign(w http.ResponseWriter, r *http.Request) {
	mentorID, ok := apiutil.PathID(r, "mentorId")
	if !ok {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// An unknown mentor is reported regardless of the body.
	exists, err := h.Mentors.Exists(ctx, mentorID)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to assign students")
		return
	}
	if !exists {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
		return
	}

	var req bulkRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		errorsfeature.BadBody(w)
		return
	}
	candidates, invalid := models.ParseIDs(req.StudentIDs)

	res, err := h.Assignments.AssignUnassigned(ctx, mentorID, candidates)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "Failed to assign students",
			zap.String("mentor_id", mentorID.Hex()),
			zap.Int("claimed_before_failure", len(res.Assigned)))
		return
	}

	batchID := auditlog.NewBatchID()
	for _, sid := range res.Assigned {
		h.Audit.StudentAssigned(ctx, r, batchID, mentorID, sid)
	}

	skipped := make([]string, 0, len(res.Skipped)+len(invalid))
	for _, sid := range res.Skipped {
		skipped = append(skipped, sid.Hex())
	}
	skipped = append(skipped, invalid...)
	h.Metrics.RecordBulkAssign(len(res.Assigned), len(skipped))

	h.Log.Info("students assigned",
		zap.String("mentor_id", mentorID.Hex()),
		zap.String("batch_id", batchID),
		zap.Int("assigned", len(res.Assigned)),
		zap.Int("skipped", len(skipped)))

	apiutil.WriteJSON(w, http.StatusOK, bulkResponse{
		Message:  "Students assigned to mentor",
		Assigned: res.Assigned,
		Skipped:  skipped,
	})
}
