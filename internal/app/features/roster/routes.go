// internal/app/features/roster/routes.go
package roster

import "github.com/go-chi/chi/v5"

// MentorStudentsRoutes returns the router mounted at /mentor-students.
func MentorStudentsRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{mentorId}", h.ServeMentorStudents)
	return r
}

// StudentMentorRoutes returns the router mounted at /student-mentor.
func StudentMentorRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{studentId}", h.ServeStudentMentor)
	return r
}
