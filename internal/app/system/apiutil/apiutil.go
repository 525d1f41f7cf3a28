// internal/app/system/apiutil/apiutil.go
package apiutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/mentorhub/internal/app/system/limits"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrBadBody is returned by DecodeJSON for any body that is not a single
// JSON value of the expected shape.
var ErrBadBody = errors.New("invalid request body")

// messageBody is the shape of every confirmation and error response.
type messageBody struct {
	Message string `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": msg} with the given status.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, messageBody{Message: msg})
}

// DecodeJSON reads one JSON value from the request body into v. Bodies
// larger than limits.MaxJSONBodySize are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return ErrBadBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize))
	if err := dec.Decode(v); err != nil {
		return ErrBadBody
	}
	return nil
}

// PathID parses the chi URL parameter key as an ObjectID. ok is false when
// the value is not a well-formed id.
func PathID(r *http.Request, key string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, key))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
