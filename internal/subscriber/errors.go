package subscriber

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every *ValidationError.
var ErrInvalid = errors.New("subscriber: invalid input")

// ValidationError reports why a field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("subscriber: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
