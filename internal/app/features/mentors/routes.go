// internal/app/features/mentors/routes.go
package mentors

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /mentors.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)
	return r
}
