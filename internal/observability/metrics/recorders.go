package metrics

import (
	"fmt"
	"time"
)

// Case outcomes.
const (
	OutcomePassed = "passed"
	OutcomeFailed = "failed"
	OutcomeError  = "error"
)

// RecordProbeRequest records a completed probe request.
func RecordProbeRequest(method, endpoint string, status int, duration time.Duration) {
	ProbeRequestsTotal.WithLabelValues(method, endpoint, StatusClass(status)).Inc()
	ProbeRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTransportError records a probe request that failed before a response arrived.
func RecordTransportError(endpoint, reason string) {
	ProbeTransportErrorsTotal.WithLabelValues(endpoint, reason).Inc()
}

// RecordBreakerStateChange records a circuit breaker transition.
func RecordBreakerStateChange(circuit, to string) {
	CircuitBreakerStateChanges.WithLabelValues(circuit, to).Inc()
}

// RecordCase records the outcome and duration of a verification case.
func RecordCase(outcome string, duration time.Duration) {
	CasesTotal.WithLabelValues(outcome).Inc()
	CaseDuration.Observe(duration.Seconds())
}

// RecordAssertions records the number of passing and failing leaves of an evaluated tree.
func RecordAssertions(passed, failed int) {
	if passed > 0 {
		AssertionsTotal.WithLabelValues("pass").Add(float64(passed))
	}
	if failed > 0 {
		AssertionsTotal.WithLabelValues("fail").Add(float64(failed))
	}
}

// StatusClass maps an HTTP status code to its class label ("2xx", "4xx", ...).
func StatusClass(status int) string {
	switch {
	case status >= 100 && status < 600:
		return fmt.Sprintf("%dxx", status/100)
	default:
		return "unknown"
	}
}
