// Package observability provides Prometheus metrics for SDK activity.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the SDK.
type Metrics struct {
	// Marketplace REST metrics
	APIRequestLatency *prometheus.HistogramVec
	APIRequestErrors  *prometheus.CounterVec

	// Node read metrics
	ReadCallLatency *prometheus.HistogramVec

	// Transaction metrics
	BroadcastLatency *prometheus.HistogramVec
	OffersSubmitted  *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "stxswap"
	}

	return &Metrics{
		APIRequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_latency_seconds",
			Help:      "Marketplace REST request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		APIRequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_errors_total",
			Help:      "Total number of marketplace REST request failures",
		}, []string{"endpoint"}),

		ReadCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "read_call_latency_seconds",
			Help:      "Read-only contract call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),

		BroadcastLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "chain",
			Name:      "broadcast_latency_seconds",
			Help:      "Transaction broadcast latency in seconds by outcome",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		OffersSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "offers",
			Name:      "submitted_total",
			Help:      "Total number of offer lifecycle transactions submitted",
		}, []string{"side", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordAPIRequest records a marketplace REST request.
func RecordAPIRequest(endpoint string, seconds float64, err error) {
	DefaultMetrics.APIRequestLatency.WithLabelValues(endpoint).Observe(seconds)
	if err != nil {
		DefaultMetrics.APIRequestErrors.WithLabelValues(endpoint).Inc()
	}
}

// RecordReadCall records a read-only contract call.
func RecordReadCall(function string, seconds float64) {
	DefaultMetrics.ReadCallLatency.WithLabelValues(function).Observe(seconds)
}

// RecordBroadcast records a transaction broadcast attempt.
func RecordBroadcast(status string, seconds float64) {
	DefaultMetrics.BroadcastLatency.WithLabelValues(status).Observe(seconds)
}

// RecordOffer records a submitted offer lifecycle transaction.
func RecordOffer(side, operation string) {
	DefaultMetrics.OffersSubmitted.WithLabelValues(side, operation).Inc()
}
