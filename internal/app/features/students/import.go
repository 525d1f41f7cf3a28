// internal/app/features/students/import.go
package students

import (
	"context"
	"errors"
	"net/http"
	"strings"

	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/limits"
	"github.com/dalemusser/mentorhub/internal/app/system/rosterimport"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type importResponse struct {
	Message  string               `json:"message"`
	Imported int                  `json:"imported"`
	Students []models.Student     `json:"students"`
	Assigned []primitive.ObjectID `json:"assigned,omitempty"`
}

// ServeImport handles POST /students/import.
//
// The multipart field "file" holds an .xlsx workbook whose first column
// lists student names. When the optional field "mentorId" is set the
// new students are assigned to that mentor; an unknown mentor is rejected
// before any student is created.
func (h *Handler) ServeImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxImportUploadSize)
	if err := r.ParseMultipartForm(limits.MaxImportMemory); err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "Invalid upload")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	var mentorID *primitive.ObjectID
	if raw := strings.TrimSpace(r.FormValue("mentorId")); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
			return
		}
		exists, err := h.Mentors.Exists(ctx, oid)
		if err != nil {
			h.ErrLog.ServerError(w, r, err, "Failed to import students")
			return
		}
		if !exists {
			apiutil.WriteMessage(w, http.StatusNotFound, errorsfeature.MsgMentorNotFound)
			return
		}
		mentorID = &oid
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apiutil.WriteMessage(w, http.StatusBadRequest, "A workbook file is required")
		return
	}
	defer file.Close()

	names, err := rosterimport.ParseNames(file, h.MaxImportRows, h.Log)
	if err != nil {
		switch {
		case errors.Is(err, rosterimport.ErrTooManyRows):
			apiutil.WriteMessage(w, http.StatusBadRequest, "Workbook has too many rows")
		default:
			h.Log.Info("rejected roster workbook", zap.String("filename", header.Filename), zap.Error(err))
			apiutil.WriteMessage(w, http.StatusBadRequest, "Workbook could not be read")
		}
		return
	}

	created, err := h.Students.CreateMany(ctx, names)
	if err != nil {
		h.ErrLog.ServerError(w, r, err, "Failed to import students", zap.String("filename", header.Filename))
		return
	}

	batchID := auditlog.NewBatchID()
	h.Audit.StudentsImported(ctx, r, batchID, header.Filename, len(created))
	h.Metrics.RecordImport(len(created))

	resp := importResponse{
		Message:  "Students imported",
		Imported: len(created),
		Students: created,
	}

	if mentorID != nil && len(created) > 0 {
		ids := make([]primitive.ObjectID, 0, len(created))
		for _, st := range created {
			ids = append(ids, st.ID)
		}
		res, err := h.Assignments.AssignUnassigned(ctx, *mentorID, ids)
		if err != nil {
			h.ErrLog.StoreError(w, r, err, "Failed to assign students",
				zap.String("batch_id", batchID),
				zap.Int("imported", len(created)))
			return
		}
		for _, sid := range res.Assigned {
			h.Audit.StudentAssigned(ctx, r, batchID, *mentorID, sid)
		}
		h.Metrics.RecordBulkAssign(len(res.Assigned), len(res.Skipped))

		// reflect the new back-references in the response
		for i := range resp.Students {
			if models.ContainsID(res.Assigned, resp.Students[i].ID) {
				resp.Students[i].Mentor = mentorID
			}
		}
		resp.Assigned = res.Assigned
		resp.Message = "Students imported and assigned to mentor"
	}

	h.Log.Info("students imported",
		zap.String("batch_id", batchID),
		zap.String("filename", header.Filename),
		zap.Int("count", len(created)))
	apiutil.WriteJSON(w, http.StatusOK, resp)
}
