// Package apperrors defines the error kinds used across the functions.
// The framework wrapper maps kinds to HTTP statuses: ValidationError to
// 400, everything else to a static 500 body.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError signals missing or malformed request fields.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PersistenceError signals a store read or write failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Persistence wraps a store failure with the operation that hit it.
func Persistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// UpstreamError signals a downstream call failure. When it occurs on a
// fire-and-forget path it is logged and never surfaced to the caller;
// when it terminates a request it maps to 500.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Upstream wraps a downstream call failure.
func Upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
