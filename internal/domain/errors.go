package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals a query or builder call a real database would reject.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDocumentID signals an empty or malformed document identifier.
	ErrInvalidDocumentID = errors.New("invalid document id")
	// ErrInvalidValue signals a field value outside the supported value model.
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidFixture signals a malformed fixture literal.
	ErrInvalidFixture = errors.New("invalid fixture")
)

// ValidationError wraps ErrValidation with the failing operation and field.
type ValidationError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: %s(%q): %s", ErrValidation.Error(), e.Op, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for op on field.
func NewValidationError(op, field, reason string) error {
	return &ValidationError{Op: op, Field: field, Reason: reason}
}
