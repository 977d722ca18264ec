package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nestify_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nestify_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Media host metrics
	MediaRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nestify_media_requests_total",
			Help: "Media host calls by operation and result (success, failure, rejected)",
		},
		[]string{"operation", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nestify_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Domain metrics
	ImageCleanupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nestify_image_cleanup_failures_total",
			Help: "Images that could not be deleted from the media host",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMediaCall records the outcome of one media host call.
func RecordMediaCall(operation, result string) {
	MediaRequests.WithLabelValues(operation, result).Inc()
}
