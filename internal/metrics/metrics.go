// Package metrics exposes the Prometheus collectors of the service and small
// helpers for recording into them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Generation
	GenerationAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_generation_attempts_total",
			Help: "Provider attempts by shape and outcome",
		},
		[]string{"shape", "outcome"}, // outcome: success|malformed|shape_mismatch|provider_error
	)
	GenerationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_generation_requests_total",
			Help: "Structured generation calls by shape and final result",
		},
		[]string{"shape", "result"}, // result: success|exhausted|canceled
	)

	// LLM
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_llm_requests_total",
			Help: "Number of LLM requests by provider",
		},
		[]string{"provider"},
	)

	// Moderation
	ModerationChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogsmith_moderation_checks_total",
			Help: "Moderation checks by verdict",
		},
		[]string{"verdict"}, // verdict: allowed|flagged|error_allowed|error_flagged
	)

	// HTTP
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogsmith_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms..25.6s
		},
		[]string{"route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		GenerationAttempts,
		GenerationRequests,
		LLMRequests,
		ModerationChecks,
		HTTPRequestDuration,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveGenerationAttempt counts one provider attempt by shape and outcome.
func ObserveGenerationAttempt(shape, outcome string) {
	GenerationAttempts.WithLabelValues(shape, outcome).Inc()
}

// ObserveGenerationRequest counts one finished Generate call by shape and result.
func ObserveGenerationRequest(shape, result string) {
	GenerationRequests.WithLabelValues(shape, result).Inc()
}

// IncLLMRequest counts one call to the named provider.
func IncLLMRequest(provider string) {
	LLMRequests.WithLabelValues(provider).Inc()
}

// IncModerationCheck counts one moderation verdict.
func IncModerationCheck(verdict string) {
	ModerationChecks.WithLabelValues(verdict).Inc()
}

// ObserveHTTPRequest records the latency of one request by route and status.
func ObserveHTTPRequest(route string, status int, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
