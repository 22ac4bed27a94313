package probe

import (
	"context"
	"errors"
	"fmt"
	"net"

	"petstore-verify/internal/resilience/circuitbreaker"
)

// TransportError reports a request that produced no HTTP response:
// connection refused, timeout, cancellation or an open circuit.
// It is never retried.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// reason classifies err for the transport error metric.
func reason(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "connection"
	}
}
