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
)

var (
	ProspectsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospects_generated_total",
			Help: "Total number of prospect records generated",
		},
		[]string{"mode"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prospects_generation_duration_seconds",
			Help:    "Duration of snapshot generation in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"mode"},
	)

	FilterResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prospects_filter_result_size",
			Help:    "Number of prospects matched per filter evaluation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	ExportRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prospects_export_rows_total",
			Help: "Total number of CSV rows exported",
		},
	)

	SnapshotOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prospects_snapshot_operations_total",
			Help: "Snapshot store operations by backend, operation and result",
		},
		[]string{"backend", "operation", "result"},
	)
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
