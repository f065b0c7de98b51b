package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrNotAuthenticated   = errors.New("authentication credentials were not provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUsernameTaken      = errors.New("username already taken")
)

var (
	ErrFacilitatorNotFound   error = NotFoundError{Entity: "facilitator"}
	ErrEventNotFound         error = NotFoundError{Entity: "event"}
	ErrAgeGroupNotFound      error = NotFoundError{Entity: "age group"}
	ErrParticipantNotFound   error = NotFoundError{Entity: "participant"}
	ErrMaterialNotFound      error = NotFoundError{Entity: "material"}
	ErrMaterialEventNotFound error = NotFoundError{Entity: "material event"}
	ErrAttendanceNotFound    error = NotFoundError{Entity: "participant attendance"}
	ErrUserNotFound          error = NotFoundError{Entity: "user"}
)

// NotFoundError reports an operation on an id that does not exist.
type NotFoundError struct {
	Entity string
}

func (e NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError lists every rejected input field with a reason.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a validation error for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// InsufficientStockError is returned when an allocation asks for more than
// the material has left.
type InsufficientStockError struct {
	MaterialID string
	Requested  int
	Available  int
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock"
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Problems collects field errors while validating an input.
type Problems map[string]string

// Add records reason for field unless the field already has one.
func (p Problems) Add(field, reason string) {
	if _, ok := p[field]; ok {
		return
	}
	p[field] = reason
}

// Err returns a *ValidationError when any problem was recorded.
func (p Problems) Err() error {
	if len(p) == 0 {
		return nil
	}
	fields := make(map[string]string, len(p))
	for k, v := range p {
		fields[k] = v
	}
	return &ValidationError{Fields: fields}
}
