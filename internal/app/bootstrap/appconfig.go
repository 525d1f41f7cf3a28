// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports,
// TLS, logging level and request body limits. AppConfig carries what is
// specific to MentorHub: where the data lives, how assignment events are
// recorded, and how often links are reconciled.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI            string        // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase       string        // Database name within MongoDB
	MongoMaxPoolSize    uint64        // Maximum connections in the driver pool
	MongoMinPoolSize    uint64        // Minimum idle connections kept open
	MongoConnectTimeout time.Duration // Bound on the initial connect + ping

	// Audit logging: "all" (db+log), "db", "log", or "off"
	AuditLog string

	// Reconciliation of mentor rosters and student back-references
	ReconcileOnStartup bool
	ReconcileInterval  time.Duration // 0 disables the background worker

	// Spreadsheet import
	ImportMaxRows int

	// Plain text served at GET /
	Greeting string

	// Request timeouts (zero keeps the defaults in system/timeouts)
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
	TimeoutBatch  time.Duration
}
