// internal/app/system/workers/reconcile.go
package workers

import (
	"context"
	"sync"
	"time"

	assignmentstore "github.com/dalemusser/mentorhub/internal/app/store/assignments"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/metrics"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Reconcile triggers, used as the metrics label.
const (
	TriggerStartup = "startup"
	TriggerWorker  = "worker"
	TriggerAdmin   = "admin"
)

// Reconciler repairs mentor/student links, either on demand through RunOnce
// or periodically once Start is called.
type Reconciler struct {
	store    *assignmentstore.Store
	audit    *auditlog.Logger
	metrics  *metrics.Collector
	log      *zap.Logger
	interval time.Duration

	// serializes passes from the ticker and from RunOnce callers
	mu sync.Mutex

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

// NewReconciler creates a reconcile worker.
//
// Parameters:
//   - store: the assignment store that performs the repair
//   - audit: records one event per repaired link (may be nil)
//   - m: metrics collector (may be nil)
//   - logger: zap logger for logging
//   - interval: how often the background loop runs; zero disables Start
func NewReconciler(store *assignmentstore.Store, audit *auditlog.Logger, m *metrics.Collector, logger *zap.Logger, interval time.Duration) *Reconciler {
	return &Reconciler{
		store:    store,
		audit:    audit,
		metrics:  m,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// RunOnce performs one reconcile pass and records its outcome.
func (w *Reconciler) RunOnce(ctx context.Context, trigger string) (assignmentstore.ReconcileReport, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	start := time.Now()
	report, err := w.store.Reconcile(ctx)
	took := time.Since(start)
	w.metrics.RecordReconcile(trigger, len(report.Cleared), len(report.Repaired), took, err)

	if !report.Clean() {
		batchID := auditlog.NewBatchID()
		for _, c := range report.Cleared {
			w.audit.DanglingMentorCleared(ctx, batchID, c.StudentID, c.MentorID)
		}
		for _, r := range report.Repaired {
			w.audit.RosterRepaired(ctx, batchID, r.MentorID, r.Before, r.After)
		}
	}

	if err != nil {
		w.log.Error("reconcile failed", zap.String("trigger", trigger), zap.Error(err))
		return report, err
	}
	w.log.Debug("reconcile finished",
		zap.String("trigger", trigger),
		zap.Int("mentors", report.MentorsScanned),
		zap.Int("students", report.StudentsScanned),
		zap.Int("deferred", report.Deferred),
		zap.Duration("took", took))
	return report, nil
}

// Start begins the background loop. It does nothing when the interval is zero.
func (w *Reconciler) Start() {
	if w.interval <= 0 {
		return
	}
	w.started = true
	w.wg.Add(1)
	go w.run()
	w.log.Info("reconcile worker started", zap.Duration("interval", w.interval))
}

// Stop signals the loop to stop and waits for it to finish.
func (w *Reconciler) Stop() {
	if !w.started {
		return
	}
	close(w.stopCh)
	w.wg.Wait()
	w.started = false
	w.log.Info("reconcile worker stopped")
}

func (w *Reconciler) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
			_, _ = w.RunOnce(ctx, TriggerWorker)
			cancel()
		}
	}
}
