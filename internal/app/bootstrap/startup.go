// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// It applies the configured timeouts, optionally repairs links left
// half-written by an earlier crash, and starts the reconcile worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
		Batch:  appCfg.TimeoutBatch,
	})
	t := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("ping", t.Ping),
		zap.Duration("short", t.Short),
		zap.Duration("medium", t.Medium),
		zap.Duration("long", t.Long),
		zap.Duration("batch", t.Batch))

	if appCfg.ReconcileOnStartup {
		rctx, cancel := context.WithTimeout(ctx, timeouts.Batch())
		report, err := deps.Reconciler.RunOnce(rctx, workers.TriggerStartup)
		cancel()
		if err != nil {
			// the service still works; the worker or an admin can retry
			logger.Warn("startup reconcile failed", zap.Error(err))
		} else if !report.Clean() {
			logger.Info("startup reconcile repaired links",
				zap.Int("cleared", len(report.Cleared)),
				zap.Int("repaired", len(report.Repaired)))
		}
	}

	deps.Reconciler.Start()
	return nil
}
