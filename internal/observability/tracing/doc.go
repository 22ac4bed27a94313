// Package tracing provides OpenTelemetry tracing integration.
//
// Probe requests are wrapped by Transport, which opens a client span per request
// and injects the W3C trace context into outgoing headers. Middleware does the
// reverse on the server side and is used by the in-process fake inventory
// service in tests, so a test can follow a case from probe to server.
//
// Spans go to the globally installed provider; without one they are no-ops.
//
// Example usage:
//
//	client := &http.Client{Transport: tracing.NewTransport(nil)}
package tracing
