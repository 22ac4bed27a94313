// Package metrics provides centralized Prometheus metrics for the verifier.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Probe metrics track calls made to the inventory API.
var (
	// ProbeRequestsTotal counts probe requests by method, endpoint and status class (2xx, 4xx, 5xx)
	ProbeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "probe_requests_total",
			Help: "Total number of requests sent to the inventory API",
		},
		[]string{"method", "endpoint", "status_class"},
	)

	// ProbeRequestDuration measures the round trip of probe requests in seconds
	ProbeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "probe_request_duration_seconds",
			Help:    "Inventory API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// ProbeTransportErrorsTotal counts requests that never produced a response
	ProbeTransportErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "probe_transport_errors_total",
			Help: "Total number of inventory API requests that failed at the transport level",
		},
		[]string{"endpoint", "reason"},
	)

	// CircuitBreakerStateChanges counts breaker transitions by breaker name and target state
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"circuit", "to"},
	)
)

// Verification metrics track scenario cases and assertion leaves.
var (
	// CasesTotal counts executed cases by outcome (passed, failed, error)
	CasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verify_cases_total",
			Help: "Total number of verification cases executed",
		},
		[]string{"outcome"},
	)

	// CaseDuration measures how long a case takes, probe calls included
	CaseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "verify_case_duration_seconds",
			Help:    "Time taken to execute a verification case",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
	)

	// AssertionsTotal counts evaluated assertion leaves by result (pass, fail)
	AssertionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verify_assertions_total",
			Help: "Total number of assertion leaves evaluated",
		},
		[]string{"result"},
	)
)
