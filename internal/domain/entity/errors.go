package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	// ErrMalformedEntity indicates that a raw payload could not be turned into a Pet
	// because a required attribute is absent, unknown, or has the wrong shape.
	ErrMalformedEntity = errors.New("malformed entity")

	// ErrUnknownDiscriminator indicates that no attribute set is registered for a pet type.
	ErrUnknownDiscriminator = errors.New("unknown discriminator")
)

// MalformedEntityError describes a decode failure with the attribute at fault.
// Raw holds the offending payload when one is available.
//
// errors.Is(err, ErrMalformedEntity) reports true for every MalformedEntityError;
// the wrapped cause (for example ErrUnknownDiscriminator) stays reachable through Unwrap.
type MalformedEntityError struct {
	Field  string
	Reason string
	Raw    []byte
	Err    error
}

// Error returns a formatted message naming the field and the reason.
func (e *MalformedEntityError) Error() string {
	msg := "malformed entity: " + e.Reason
	if e.Field != "" {
		msg = fmt.Sprintf("malformed entity: attribute '%s': %s", e.Field, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if len(e.Raw) > 0 {
		msg += fmt.Sprintf(" (payload: %s)", truncatePayload(e.Raw, maxPayloadInError))
	}
	return msg
}

// Is reports whether target is ErrMalformedEntity.
func (e *MalformedEntityError) Is(target error) bool {
	return target == ErrMalformedEntity
}

// Unwrap returns the underlying cause.
func (e *MalformedEntityError) Unwrap() error {
	return e.Err
}

const maxPayloadInError = 512

func truncatePayload(raw []byte, max int) string {
	if len(raw) <= max {
		return string(raw)
	}
	return string(raw[:max]) + "..."
}

func malformed(field, reason string, err error) *MalformedEntityError {
	return &MalformedEntityError{Field: field, Reason: reason, Err: err}
}
