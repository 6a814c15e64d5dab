// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	// SignalFetches counts upstream calls per provider. outcome is "ok",
	// "error" or "fallback".
	SignalFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farm_signal_fetches_total",
			Help: "Upstream signal provider calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	SignalFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "farm_signal_fetch_duration_seconds",
			Help:    "Upstream signal provider latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	SignalCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farm_signal_cache_lookups_total",
			Help: "Signal cache lookups by result (hit, miss, error)",
		},
		[]string{"signal", "result"},
	)

	PlansComposed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farm_plans_composed_total",
			Help: "Recommendation plans composed by suggested crop",
		},
		[]string{"crop"},
	)

	PlanRisks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farm_plan_risks_total",
			Help: "Risks flagged in composed plans",
		},
		[]string{"risk"},
	)
)
