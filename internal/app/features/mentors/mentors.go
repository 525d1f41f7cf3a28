// internal/app/features/mentors/mentors.go
package mentors

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"github.com/dalemusser/mentorhub/internal/app/system/sanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type createRequest struct {
	Name string `json:"name"`
}

// ServeCreate handles POST /mentors. The new mentor starts with an empty
// roster and is returned with its id.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		errorsfeature.BadBody(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Mentors.Create(ctx, sanitize.Name(req.Name))
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to create mentor")
		return
	}
	h.Audit.MentorCreated(ctx, r, m.ID)
	h.Log.Debug("mentor created", zap.String("mentor_id", m.ID.Hex()))

	apiutil.WriteJSON(w, http.StatusOK, m)
}

// ServeList handles GET /mentors.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Mentors.List(ctx)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to list mentors")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, list)
}

// ServeGet handles GET /mentors/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := apiutil.PathID(r, "id")
	if !ok {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Mentors.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "Failed to load mentor")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, m)
}
