package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegames_executions_total",
			Help: "Total number of sandboxed program runs",
		},
		[]string{"language", "status"}, // status: ok, error, timeout, cancelled, spawn_error
	)

	ExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegames_execution_duration_ms",
			Help:    "Wall time of a sandboxed program run in milliseconds",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"language"},
	)

	MemoryUsage = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codegames_memory_usage_kb",
			Help:    "Peak resident memory per run in KB",
			Buckets: []float64{4096, 16384, 32768, 65536, 131072, 262144},
		},
		[]string{"language"},
	)

	ExecutionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "codegames_executions_in_flight",
			Help: "Number of interpreter processes currently running",
		},
	)

	ScreeningRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegames_screening_rejections_total",
			Help: "Submissions rejected by static screening",
		},
		[]string{"language", "category"},
	)

	GradingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegames_grading_runs_total",
			Help: "Grading requests by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	ResultCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codegames_result_cache_lookups_total",
			Help: "Result cache lookups by outcome",
		},
		[]string{"outcome"}, // hit, miss, error
	)

	RateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "codegames_rate_limit_hits_total",
			Help: "Total number of requests rejected by rate limiter",
		},
	)
)
