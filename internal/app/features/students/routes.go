// internal/app/features/students/routes.go
package students

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /students.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Post("/import", h.ServeImport)
	r.Get("/{id}", h.ServeGet)
	r.Get("/{id}/history", h.ServeHistory)
	return r
}
