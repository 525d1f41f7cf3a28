// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminfeature "github.com/dalemusser/mentorhub/internal/app/features/admin"
	assignfeature "github.com/dalemusser/mentorhub/internal/app/features/assign"
	errorsfeature "github.com/dalemusser/mentorhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/mentorhub/internal/app/features/health"
	homefeature "github.com/dalemusser/mentorhub/internal/app/features/home"
	mentorsfeature "github.com/dalemusser/mentorhub/internal/app/features/mentors"
	rosterfeature "github.com/dalemusser/mentorhub/internal/app/features/roster"
	studentsfeature "github.com/dalemusser/mentorhub/internal/app/features/students"
	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every feature gets the shared database,
// audit logger, metrics collector and error logger from deps.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	errLog := errorsfeature.NewErrorLogger(logger)
	db := deps.MongoDatabase

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(deps.Metrics.Middleware)

	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", deps.Metrics.Handler())

	homeHandler := homefeature.NewHandler(appCfg.Greeting, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	mentorsHandler := mentorsfeature.NewHandler(db, deps.Audit, errLog, logger)
	r.Mount("/mentors", mentorsfeature.Routes(mentorsHandler))

	studentsHandler := studentsfeature.NewHandler(db, deps.Audit, deps.Metrics, errLog, appCfg.ImportMaxRows, logger)
	r.Mount("/students", studentsfeature.Routes(studentsHandler))

	// Assignment writes
	assignHandler := assignfeature.NewHandler(db, deps.Audit, deps.Metrics, errLog, logger)
	r.Mount("/assign", assignfeature.BulkRoutes(assignHandler))
	r.Mount("/assign-student", assignfeature.StudentRoutes(assignHandler))

	// Relationship queries
	rosterHandler := rosterfeature.NewHandler(db, errLog, logger)
	r.Mount("/mentor-students", rosterfeature.MentorStudentsRoutes(rosterHandler))
	r.Mount("/student-mentor", rosterfeature.StudentMentorRoutes(rosterHandler))

	adminHandler := adminfeature.NewHandler(deps.Reconciler, audit.New(db), errLog, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	return r, nil
}
