// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mentorhub"

// Collector owns the service's Prometheus registry. A nil *Collector is
// valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	studentsAssignedTotal prometheus.Counter
	studentsSkippedTotal  prometheus.Counter
	reassignmentsTotal    *prometheus.CounterVec

	reconcileRunsTotal     *prometheus.CounterVec
	reconcileClearedTotal  prometheus.Counter
	reconcileRepairedTotal prometheus.Counter
	reconcileDuration      prometheus.Histogram

	studentsImportedTotal prometheus.Counter
	importRowsPerWorkbook prometheus.Histogram
}

// New creates a Collector backed by its own registry, with the Go runtime
// and process collectors registered alongside the service metrics.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route pattern and status code",
			},
			[]string{"method", "route", "code"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route pattern",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		studentsAssignedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "students_assigned_total",
			Help:      "Students linked to a mentor by bulk assignment",
		}),
		studentsSkippedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "students_skipped_total",
			Help:      "Bulk assignment candidates left alone (unknown or already assigned)",
		}),
		reassignmentsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reassignments_total",
				Help:      "Single-student reassignments by outcome",
			},
			[]string{"outcome"},
		),
		reconcileRunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_runs_total",
				Help:      "Reconcile passes by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		reconcileClearedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_dangling_cleared_total",
			Help:      "Student references to missing mentors cleared by reconcile",
		}),
		reconcileRepairedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_rosters_repaired_total",
			Help:      "Mentor rosters rewritten by reconcile",
		}),
		reconcileDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconcile passes",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		studentsImportedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "students_imported_total",
			Help:      "Students created from spreadsheet imports",
		}),
		importRowsPerWorkbook: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_rows_per_workbook",
			Help:      "Names read from each imported workbook",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency keyed by chi route pattern,
// so /mentors/{id} is one series rather than one per id.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// RecordBulkAssign records the outcome of one bulk assignment.
func (c *Collector) RecordBulkAssign(assigned, skipped int) {
	if c == nil {
		return
	}
	c.studentsAssignedTotal.Add(float64(assigned))
	c.studentsSkippedTotal.Add(float64(skipped))
}

// RecordReassign records one reassignment; changed is false for no-ops.
func (c *Collector) RecordReassign(changed bool) {
	if c == nil {
		return
	}
	outcome := "moved"
	if !changed {
		outcome = "noop"
	}
	c.reassignmentsTotal.WithLabelValues(outcome).Inc()
}

// RecordReconcile records one reconcile pass. trigger is "startup",
// "worker" or "admin".
func (c *Collector) RecordReconcile(trigger string, cleared, repaired int, took time.Duration, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.reconcileRunsTotal.WithLabelValues(trigger, result).Inc()
	c.reconcileClearedTotal.Add(float64(cleared))
	c.reconcileRepairedTotal.Add(float64(repaired))
	c.reconcileDuration.Observe(took.Seconds())
}

// RecordImport records one spreadsheet import.
func (c *Collector) RecordImport(rows int) {
	if c == nil {
		return
	}
	c.studentsImportedTotal.Add(float64(rows))
	c.importRowsPerWorkbook.Observe(float64(rows))
}
