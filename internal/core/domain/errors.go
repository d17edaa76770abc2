package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
)

// FieldValidationError carries a field→message map for one or more
// violated business rules. Handlers return the whole map at once.
type FieldValidationError struct {
	Fields map[string]string
}

// NewFieldError creates a validation error for a single field.
func NewFieldError(field, message string) *FieldValidationError {
	return &FieldValidationError{
		Fields: map[string]string{field: message},
	}
}

// NewFieldErrors wraps an already collected field→message map.
func NewFieldErrors(fields map[string]string) *FieldValidationError {
	return &FieldValidationError{Fields: fields}
}

func (e *FieldValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsFieldValidationError unwraps err into a *FieldValidationError if possible.
func AsFieldValidationError(err error) (*FieldValidationError, bool) {
	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return fieldErr, true
	}
	return nil, false
}
