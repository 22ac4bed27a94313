// Package scenario runs verification cases against a live inventory API.
// Each case probes the API, compares the response with fixture data and
// returns an assertion tree; the Runner executes cases concurrently.
package scenario

import (
	"errors"
	"fmt"
)

// Sentinel errors for scenario execution.
var (
	// ErrNoExpectedPet indicates that the fixture store holds no pet matching the case's selection.
	ErrNoExpectedPet = errors.New("no expected pet in fixture store")

	// ErrUnexpectedBody indicates a 2xx response whose body was neither a pet nor an error.
	ErrUnexpectedBody = errors.New("response carried no decodable body")

	// ErrNoRunFunc indicates a case without a run function.
	ErrNoRunFunc = errors.New("case has no run function")

	// ErrNoTree indicates a case that returned neither a tree nor an error.
	ErrNoTree = errors.New("case returned no assertion tree")
)

// PanicError reports a case whose run function panicked.
type PanicError struct {
	Case  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("case %s panicked: %v", e.Case, e.Value)
}
