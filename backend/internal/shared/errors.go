// ============================================================================
// backend/internal/shared/errors.go
// Error taxonomy shared by all engine services
// ============================================================================

package shared

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity (course, unit, teacher,
// coordinator, submission, ...) does not exist. Gateways map it to 404.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// NewNotFoundError creates a NotFoundError for the given entity and key.
func NewNotFoundError(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// ConflictError signals a duplicate unique key (course code, unit code,
// teacher email, ...). Gateways map it to 409.
type ConflictError struct {
	Entity string
	Key    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Entity, e.Key)
}

// NewConflictError creates a ConflictError for the given entity and key.
func NewConflictError(entity, key string) error {
	return &ConflictError{Entity: entity, Key: key}
}

// ValidationError signals malformed input: a missing required field, a grade
// outside [0,100], a week number outside [1,4]. Gateways map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
