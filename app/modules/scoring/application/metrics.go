package scoringservice

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the instrumentation surface of the scoring service.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordRejection(ctx context.Context, operation, code string)
	RecordScoreWrite(ctx context.Context, writer string)
}

type prometheusMetrics struct {
	attempts   *prometheus.CounterVec
	failures   *prometheus.CounterVec
	rejections *prometheus.CounterVec
	writes     *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewPrometheusMetrics registers and returns the scoring metrics set.
func NewPrometheusMetrics(registry *prometheus.Registry) Metrics {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoring",
			Name:      "operation_attempts_total",
			Help:      "Scoring operations started.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoring",
			Name:      "operation_failures_total",
			Help:      "Scoring operations that failed with an infrastructure error.",
		}, []string{"operation"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoring",
			Name:      "operation_rejections_total",
			Help:      "Scoring operations rejected by a precondition (lock, validation, not found).",
		}, []string{"operation", "code"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoring",
			Name:      "score_writes_total",
			Help:      "Accepted ledger writes by writer kind.",
		}, []string{"writer"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scoring",
			Name:      "operation_duration_seconds",
			Help:      "Scoring operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	registry.MustRegister(m.attempts, m.failures, m.rejections, m.writes, m.durations)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.durations.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordRejection(_ context.Context, operation, code string) {
	m.rejections.WithLabelValues(operation, code).Inc()
}

func (m *prometheusMetrics) RecordScoreWrite(_ context.Context, writer string) {
	m.writes.WithLabelValues(writer).Inc()
}

// NoopMetrics is used in tests.
type NoopMetrics struct{}

func (NoopMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoopMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoopMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoopMetrics) RecordRejection(context.Context, string, string)                {}
func (NoopMetrics) RecordScoreWrite(context.Context, string)                       {}
