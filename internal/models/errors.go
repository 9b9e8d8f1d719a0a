package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidArgument is returned when an operation receives a value outside
// its documented range, e.g. a discount percentage above 100.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrMalformedInput is returned when an input record is missing a required
// field, e.g. a line item without a price or quantity.
var ErrMalformedInput = errors.New("malformed input")

// ValidationError describes a user-facing validation failure on a single field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
