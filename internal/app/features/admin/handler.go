// internal/app/features/admin/handler.go
package admin

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/workers"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Reconciler runs one repair pass over the mentor/student links.
type Reconciler interface {
	RunOnce(ctx context.Context, trigger string) (assignmentstore.ReconcileReport, error)
}

// Handler serves maintenance endpoints.
type Handler struct {
	Reconciler Reconciler
	Events     *audit.Store
	ErrLog     *errorsfeature.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(rec Reconciler, events *audit.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Reconciler: rec,
		Events:     events,
		ErrLog:     errLog,
		Log:        logger,
	}
}

// ServeReconcile handles POST /admin/reconcile and returns the pass report.
func (h *Handler) ServeReconcile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	report, err := h.Reconciler.RunOnce(ctx, workers.TriggerAdmin)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to reconcile assignments")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, report)
}

// ServeBatch handles GET /admin/batches/{batchId}: every audit event written
// by one bulk assignment, import or reconcile pass, oldest first. An unknown
// batch yields an empty list.
func (h *Handler) ServeBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchId")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.ByBatch(ctx, batchID)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to load batch events", zap.String("batch_id", batchID))
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, events)
}
