// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/rosterimport"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for MentorHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, audit_log, etc.
//   - Environment variables: MENTORHUB_MONGO_URI, MENTORHUB_AUDIT_LOG, etc.
//   - Command-line flags: --mongo_uri, --audit_log, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "mentorhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "mongo_connect_timeout", Default: "10s", Desc: "MongoDB connect and initial ping timeout"},

	// Audit logging settings
	{Name: "audit_log", Default: "all", Desc: "Assignment event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Reconciliation
	{Name: "reconcile_on_startup", Default: true, Desc: "Repair mentor/student links once at startup"},
	{Name: "reconcile_interval", Default: "0s", Desc: "Background reconcile interval (0 disables)"},

	// Import
	{Name: "import_max_rows", Default: rosterimport.DefaultMaxRows, Desc: "Maximum rows accepted from an uploaded roster workbook"},

	{Name: "greeting", Default: "Hello Everyone🥳🥳🥳", Desc: "Plain text served at GET /"},

	// Timeouts
	{Name: "timeout_short", Default: "0s", Desc: "Timeout for single-document reads and writes (0 keeps default)"},
	{Name: "timeout_medium", Default: "0s", Desc: "Timeout for listings and creates (0 keeps default)"},
	{Name: "timeout_long", Default: "0s", Desc: "Timeout for multi-document assignment writes (0 keeps default)"},
	{Name: "timeout_batch", Default: "0s", Desc: "Timeout for imports and reconcile passes (0 keeps default)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, MENTORHUB_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MENTORHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:            appValues.String("mongo_uri"),
		MongoDatabase:       appValues.String("mongo_database"),
		MongoMaxPoolSize:    uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:    uint64(appValues.Int("mongo_min_pool_size")),
		MongoConnectTimeout: appValues.Duration("mongo_connect_timeout", 10*time.Second),

		AuditLog: appValues.String("audit_log"),

		ReconcileOnStartup: appValues.Bool("reconcile_on_startup"),
		ReconcileInterval:  appValues.Duration("reconcile_interval", 0),

		ImportMaxRows: appValues.Int("import_max_rows"),
		Greeting:      appValues.String("greeting"),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
		TimeoutBatch:  appValues.Duration("timeout_batch", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked to catch configuration errors early,
// before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	switch appCfg.AuditLog {
	case auditlog.ModeAll, auditlog.ModeDB, auditlog.ModeLog, auditlog.ModeOff:
	default:
		return fmt.Errorf("audit_log must be one of all, db, log, off (got %q)", appCfg.AuditLog)
	}

	if appCfg.ImportMaxRows <= 0 {
		return fmt.Errorf("import_max_rows must be positive (got %d)", appCfg.ImportMaxRows)
	}
	if appCfg.ReconcileInterval < 0 {
		return fmt.Errorf("reconcile_interval must not be negative")
	}

	return nil
}
