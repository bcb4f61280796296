// Package metrics provides Prometheus metrics for provider calls, pipeline
// operations and generation jobs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider call outcomes.
const (
	OutcomeLive     = "live"
	OutcomeFallback = "fallback"
	OutcomeFailure  = "failure"
	OutcomeCached   = "cached"
)

var (
	// ProviderCalls counts provider calls.
	// Labels: capability (text, fetch, search), outcome (live, fallback, failure, cached)
	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seosite",
			Subsystem: "provider",
			Name:      "calls_total",
			Help:      "Total number of provider calls by capability and outcome",
		},
		[]string{"capability", "outcome"},
	)

	// ProviderDuration tracks how long provider calls take, fallbacks included.
	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "seosite",
			Subsystem: "provider",
			Name:      "call_duration_seconds",
			Help:      "Duration of provider calls in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"capability"},
	)

	// PipelineOperations counts pipeline operations.
	// Labels: operation, result (ok, invalid, error)
	PipelineOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seosite",
			Subsystem: "pipeline",
			Name:      "operations_total",
			Help:      "Total number of pipeline operations by result",
		},
		[]string{"operation", "result"},
	)

	// JobsProcessed counts generation jobs handled by the worker.
	// Labels: surface (blog, landing), status (done, failed)
	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "seosite",
			Subsystem: "worker",
			Name:      "jobs_processed_total",
			Help:      "Total number of generation jobs processed",
		},
		[]string{"surface", "status"},
	)

	// StoreRecords reports the size of each content store collection.
	StoreRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "seosite",
			Subsystem: "store",
			Name:      "records",
			Help:      "Number of records held per collection",
		},
		[]string{"collection"},
	)
)

// ObserveProvider records one provider call that started at start.
func ObserveProvider(capability, outcome string, start time.Time) {
	ProviderCalls.WithLabelValues(capability, outcome).Inc()
	ProviderDuration.WithLabelValues(capability).Observe(time.Since(start).Seconds())
}
