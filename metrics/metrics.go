// Package metrics holds the application's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "birdquest",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "birdquest",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	// Discoveries counts discovery calls by terminal outcome:
	// discovered, already_found, unmatched.
	Discoveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "birdquest",
			Subsystem: "discovery",
			Name:      "outcomes_total",
			Help:      "Total number of discovery calls by outcome.",
		},
		[]string{"outcome"},
	)

	// ClassifierRequests counts calls to the classification model by result:
	// ok, error, timeout.
	ClassifierRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "birdquest",
			Subsystem: "classifier",
			Name:      "requests_total",
			Help:      "Total number of classifier calls by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, Discoveries, ClassifierRequests)
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(method, path, status string, seconds float64) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(seconds)
}

// Handler serves the /metrics endpoint from the application registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
