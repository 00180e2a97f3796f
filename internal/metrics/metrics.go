// Package metrics exposes audit results as Prometheus metrics.
//
// A Listener owns its registry so repeated runs in one process (watch mode,
// tests) never collide on the default registerer.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

const (
	namespace = "leapcheck"
	subsystem = "audit"
)

// File outcomes used as the status label of files_total.
const (
	StatusChecked = "checked"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

var _ lint.AuditListener = (*Listener)(nil)

// Listener is a lint.AuditListener that records counters per audit.
type Listener struct {
	registry *prometheus.Registry

	audits     prometheus.Counter
	files      *prometheus.CounterVec
	violations *prometheus.CounterVec
	exceptions prometheus.Counter
	duration   prometheus.Histogram
	lastRun    prometheus.Gauge

	mu      sync.Mutex
	started time.Time
	failed  map[string]bool
	now     func() time.Time
}

// NewListener creates a listener with a fresh registry.
func NewListener() *Listener {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Listener{
		registry: reg,
		audits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Total number of completed audits",
		}),
		files: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "files_total",
			Help:      "Total number of files by outcome",
		}, []string{"status"}),
		violations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "violations_total",
			Help:      "Total number of violations by module and severity",
		}, []string{"module", "severity"}),
		exceptions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "exceptions_total",
			Help:      "Total number of files that could not be checked",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Time spent notifying an audit, from start to finish",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed audit",
		}),
		failed: make(map[string]bool),
		now:    time.Now,
	}
}

// Registry returns the registry holding the listener's collectors.
func (l *Listener) Registry() *prometheus.Registry { return l.registry }

// AuditStarted implements lint.AuditListener.
func (l *Listener) AuditStarted() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = l.now()
	clear(l.failed)
}

// FileStarted implements lint.AuditListener.
func (l *Listener) FileStarted(string) {}

// AddViolation implements lint.AuditListener.
func (l *Listener) AddViolation(v lint.Violation) {
	l.violations.WithLabelValues(v.Module, v.Severity.String()).Inc()
}

// AddException implements lint.AuditListener.
func (l *Listener) AddException(path string, _ error) {
	l.mu.Lock()
	l.failed[path] = true
	l.mu.Unlock()
	l.exceptions.Inc()
}

// FileFinished implements lint.AuditListener.
func (l *Listener) FileFinished(path string, skipped bool) {
	l.mu.Lock()
	failed := l.failed[path]
	l.mu.Unlock()

	switch {
	case failed:
		l.files.WithLabelValues(StatusFailed).Inc()
	case skipped:
		l.files.WithLabelValues(StatusSkipped).Inc()
	default:
		l.files.WithLabelValues(StatusChecked).Inc()
	}
}

// AuditFinished implements lint.AuditListener.
func (l *Listener) AuditFinished(*lint.Report) {
	l.mu.Lock()
	started := l.started
	l.mu.Unlock()

	end := l.now()
	if !started.IsZero() {
		l.duration.Observe(end.Sub(started).Seconds())
	}
	l.lastRun.Set(float64(end.Unix()))
	l.audits.Inc()
}

// WriteTextfile writes the current metrics in the text exposition format,
// atomically, for the node exporter textfile collector.
func (l *Listener) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, l.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
