// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the clauselens service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for completion API latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

// HTTPBuckets covers the short handlers (signup, login, health) as well as
// analysis calls that wait on the gateway.
var HTTPBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 5, 30, 60}

var (
	// RequestsTotal counts HTTP requests by method, route template, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauselens_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clauselens_request_duration_seconds",
			Help:    "Request duration",
			Buckets: HTTPBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthEventsTotal counts signup, login and guard outcomes.
	AuthEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauselens_auth_events_total",
			Help: "Authentication events",
		},
		[]string{"event", "outcome"},
	)

	// GatewayRequestsTotal counts completion requests by model and result
	// ("ok" or a failure kind).
	GatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauselens_gateway_requests_total",
			Help: "Analysis gateway requests",
		},
		[]string{"model", "status"},
	)

	// GatewayLatency records completion API latency in seconds.
	GatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clauselens_gateway_latency_seconds",
			Help:    "Analysis gateway latency",
			Buckets: LLMBuckets,
		},
		[]string{"model"},
	)

	// GatewayTokensTotal counts tokens reported by the completion API (input/output).
	GatewayTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauselens_gateway_tokens_total",
			Help: "Token count",
		},
		[]string{"model", "direction"},
	)

	// GatewayFallbacksTotal counts analyses answered with the fallback message.
	GatewayFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clauselens_gateway_fallbacks_total",
			Help: "Fallback analyses served",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthEventsTotal,
		GatewayRequestsTotal,
		GatewayLatency,
		GatewayTokensTotal,
		GatewayFallbacksTotal,
	)
}
