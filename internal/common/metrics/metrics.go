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

	// outcome: success, client_error, error, empty, malformed
	OracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_oracle_calls_total",
			Help: "Reasoning oracle attempts by outcome",
		},
		[]string{"outcome"},
	)

	OracleRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "venue_oracle_rate_limited_total",
			Help: "Analyses that skipped the oracle because the call window was full",
		},
	)

	AnalysisResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_analysis_results_total",
			Help: "Venue analyses served, by source (oracle, fallback, cache)",
		},
		[]string{"source"},
	)

	AnalysisCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_analysis_cache_lookups_total",
			Help: "Analysis cache lookups by result (hit, miss, stale, error)",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CatalogQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_catalog_queries_total",
			Help: "Venue catalog queries by source and status",
		},
		[]string{"source", "status"},
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "venue_catalog_query_duration_seconds",
			Help:    "Venue catalog query latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	PlanShares = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_plan_shares_total",
			Help: "Plan share deliveries by channel and status",
		},
		[]string{"channel", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_api_requests_total",
			Help: "HTTP API requests by route and status code",
		},
		[]string{"route", "code"},
	)
)
