package service

import (
	"errors"
	"fmt"
	"strings"
)

// ── sentinel errors shared across modules ──

var (
	ErrSlotNotFound = errors.New("weekly slot not found")
	ErrPlanNotFound = errors.New("monthly plan entry not found")
	ErrPlanConflict = errors.New("monthly plan natural key already taken")
)

// FieldError pinpoints a single invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries field-level validation failures. All validation
// for an entity runs before any write, so a ValidationError guarantees
// nothing was persisted.
type ValidationError struct {
	Fields []FieldError
}

// Error implements error.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// invalid builds a single-field ValidationError.
func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
