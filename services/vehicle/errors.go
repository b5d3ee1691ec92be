package vehicle

import "errors"

var (
	// ErrNotFound signals the vehicle does not exist.
	ErrNotFound = errors.New("vehicle not found")

	// ErrInvalidInput rejects malformed fleet-admin input.
	ErrInvalidInput = errors.New("invalid vehicle input")
)

// InputError wraps ErrInvalidInput with the offending field.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid vehicle input: " + e.Reason
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}
