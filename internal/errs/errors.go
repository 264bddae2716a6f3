package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports a required-field or range violation detected before
// any store call. It is always recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PersistenceError wraps a store rejection. The store diagnostic is carried
// verbatim so the admin surface can display it.
type PersistenceError struct {
	Op       string
	NotFound bool
	Err      error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Op)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistence wraps a store-side failure for op.
func NewPersistence(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// NewNotFound marks a persistence failure caused by an unresolved identifier.
func NewNotFound(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, NotFound: true, Err: err}
}

// IsNotFound reports whether err is a PersistenceError for a missing record.
func IsNotFound(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.NotFound
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
