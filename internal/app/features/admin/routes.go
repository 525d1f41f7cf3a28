// internal/app/features/admin/routes.go
package admin

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/reconcile", h.ServeReconcile)
	r.Get("/batches/{batchId}", h.ServeBatch)
	return r
}
