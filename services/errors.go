package services

import (
	"errors"
	"fmt"
)

// Domain errors. The centralized error handler in main.go maps each of
// these to an HTTP status and the uniform JSON envelope.
var (
	ErrNotFound          = errors.New("inventory item not found")
	ErrInvalidID         = errors.New("invalid inventory item id")
	ErrInsufficientStock = errors.New("insufficient stock for this operation")
	ErrInvalidOperation  = errors.New("operation must be 'use' or 'restock'")
)

// FieldError attributes a validation failure to the field that caused it,
// so clients can render the message next to the right form input
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the accumulated per-field failures of one request
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError builds a ValidationError from one or more field errors
func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("%s: %s", e.Errors[0].Field, e.Errors[0].Message)
}
