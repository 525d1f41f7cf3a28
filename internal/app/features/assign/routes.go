// internal/app/features/assign/routes.go
package assign

import "github.com/go-chi/chi/v5"

// BulkRoutes returns the router mounted at /assign.
func BulkRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/{mentorId}", h.ServeBulkAssign)
	return r
}

// StudentRoutes returns the router mounted at /assign-student.
func StudentRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/{studentId}", h.ServeReassign)
	return r
}
