// Package resilience provides fault isolation for calls to the inventory API.
//
// The verifier never retries a failed request: a transport failure is fatal to
// the case that issued it. A circuit breaker instead stops a run from hammering
// an unreachable service; once it opens, remaining cases fail fast with a
// transport error.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.InventoryAPIConfig())
//	resp, err := circuitbreaker.Run(cb, func() (*http.Response, error) {
//	    return client.Do(req)
//	})
package resilience
