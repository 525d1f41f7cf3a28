// internal/app/features/errors/errors.go
package errors

import (
	stderrors "errors"
	"net/http"

	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	"github.com/dalemusser/mentorhub/internal/app/system/apiutil"
	"go.uber.org/zap"
)

// Messages returned for missing entities.
const (
	MsgMentorNotFound  = "Mentor not found"
	MsgStudentNotFound = "Student not found"
	MsgBadBody         = "Invalid request body"
	MsgConflict        = "Student was reassigned concurrently, retry the request"
)

// ErrorLogger turns store errors into JSON responses, logging anything
// that is not the caller's fault. Causes are never written to the client.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger creates an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// StoreError maps err to a response: missing mentor or student becomes 404,
// a lost reassignment race becomes 409, anything else is logged and answered
// with 500 and failMsg.
func (e *ErrorLogger) StoreError(w http.ResponseWriter, r *http.Request, err error, failMsg string, fields ...zap.Field) {
	switch {
	case stderrors.Is(err, assignmentstore.ErrMentorNotFound):
		apiutil.WriteMessage(w, http.StatusNotFound, MsgMentorNotFound)
	case stderrors.Is(err, assignmentstore.ErrStudentNotFound):
		apiutil.WriteMessage(w, http.StatusNotFound, MsgStudentNotFound)
	case stderrors.Is(err, assignmentstore.ErrConcurrentChange):
		apiutil.WriteMessage(w, http.StatusConflict, MsgConflict)
	default:
		e.ServerError(w, r, err, failMsg, fields...)
	}
}

// ServerError logs err and writes a 500 with the generic msg.
func (e *ErrorLogger) ServerError(w http.ResponseWriter, r *http.Request, err error, msg string, fields ...zap.Field) {
	fields = append(fields,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	if stderrors.Is(err, assignmentstore.ErrDanglingMentor) {
		e.log.Error("dangling mentor reference", fields...)
	} else {
		e.log.Error(msg, fields...)
	}
	apiutil.WriteMessage(w, http.StatusInternalServerError, msg)
}

// BadBody writes a 400 for a request body that could not be decoded.
func BadBody(w http.ResponseWriter) {
	apiutil.WriteMessage(w, http.StatusBadRequest, MsgBadBody)
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	apiutil.WriteMessage(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apiutil.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
