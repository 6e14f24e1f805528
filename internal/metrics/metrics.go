package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_insights_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ride_insights_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_insights_http_requests_rejected_total",
			Help: "Requests rejected before reaching a handler",
		},
		[]string{"reason"},
	)

	// Report metrics
	ReportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_insights_report_runs_total",
			Help: "Total number of report executions",
		},
		[]string{"report", "status"},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ride_insights_report_duration_seconds",
			Help:    "Report execution time including snapshot load",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	ReportRowsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_insights_report_rows_skipped_total",
			Help: "Input rows skipped for data-quality problems",
		},
		[]string{"report"},
	)

	// Ingestion metrics
	IngestRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ride_insights_ingest_rows_total",
			Help: "Rows seen by the ingestion pipeline by outcome",
		},
		[]string{"outcome"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ride_insights_ingest_duration_seconds",
			Help:    "End-to-end ingestion run time",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
)

// RecordHTTPMetrics records HTTP request metrics
func RecordHTTPMetrics(method, path string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordReport records one report execution.
func RecordReport(report string, skipped int, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ReportRunsTotal.WithLabelValues(report, status).Inc()
	ReportDuration.WithLabelValues(report).Observe(duration.Seconds())
	if skipped > 0 {
		ReportRowsSkipped.WithLabelValues(report).Add(float64(skipped))
	}
}

func RecordIngest(read, kept, dropped int, duration time.Duration) {
	IngestRowsTotal.WithLabelValues("read").Add(float64(read))
	IngestRowsTotal.WithLabelValues("kept").Add(float64(kept))
	IngestRowsTotal.WithLabelValues("dropped").Add(float64(dropped))
	IngestDuration.Observe(duration.Seconds())
}
