// Package metrics provides the Prometheus collectors of the verifier.
//
// Collectors are registered with the Prometheus default registry and exposed
// by cmd/inventory-verify when -metrics-addr is set:
//   - probe metrics: requests, durations, transport errors, breaker transitions
//   - verification metrics: cases by outcome, case duration, assertion leaves
//
// Example usage:
//
//	start := time.Now()
//	resp, err := session.FetchEntity(ctx, params)
//	metrics.RecordProbeRequest(http.MethodGet, "/inventory/search", resp.StatusCode, time.Since(start))
package metrics
