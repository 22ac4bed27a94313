// Package observability groups the logging, metrics and tracing support used by
// the verification runner and the HTTP probe.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus collectors for probe calls, cases and assertions
//   - tracing: OpenTelemetry spans around probe requests
//   - requestid: per-session request ids sent as X-Request-ID
package observability
