// internal/app/features/students/students.go
package students

import (
	"context"
	"net/http"
	"strconv"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"github.com/dalemusser/mentorhub/internal/app/system/limits"
	"github.com/dalemusser/mentorhub/internal/app/system/sanitize"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type createRequest struct {
	Name string `json:"name"`
}

// ServeCreate handles POST /students. The new student has no mentor.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := apiutil.DecodeJSON(w, r, &req); err != nil {
		errorsfeature.BadBody(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.Students.Create(ctx, sanitize.Name(req.Name))
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to create student")
		return
	}
	h.Audit.StudentCreated(ctx, r, st.ID)
	h.Log.Debug("student created", zap.String("student_id", st.ID.Hex()))

	apiutil.WriteJSON(w, http.StatusOK, st)
}

// ServeList handles GET /students[?unassigned=true].
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	unassigned, _ := strconv.ParseBool(r.URL.Query().Get("unassigned"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Students.List(ctx, unassigned)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to list students")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, list)
}

// ServeGet handles GET /students/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := apiutil.PathID(r, "id")
	if !ok {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgStudentNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	st, err := h.Students.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.StoreError(w, r, err, "Failed to load student")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, st)
}

// ServeHistory handles GET /students/{id}/history: the student's most
// recent assignment events, newest first.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := apiutil.PathID(r, "id")
	if !ok {
		apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgStudentNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Students.GetByID(ctx, id); err != nil {
		h.ErrLog.StoreError(w, r, err, "Failed to load student history")
		return
	}
	events, err := h.Events.ByStudent(ctx, id, limits.HistoryLimit)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to load student history")
		return
	}
	apiutil.WriteJSON(w, http.StatusOK, events)
}
