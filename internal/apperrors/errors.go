// Package apperrors defines the error taxonomy shared by all handlers and
// repositories. Store failures are wrapped and never leaked raw to clients.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError reports a missing project, technology or user.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Resource, e.ID)
}

func NotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// DuplicateError reports a unique-constraint violation, either surfaced
// proactively by a pre-check or mapped from the database constraint itself.
type DuplicateError struct {
	Message string
}

func (e *DuplicateError) Error() string { return e.Message }

func Duplicate(format string, args ...any) error {
	return &DuplicateError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports a payload-shape violation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps any underlying database failure. The wrapped detail is
// logged server-side; clients only ever see a generic message.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store error: %v", e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

func Store(err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: err}
}

// InternalError reports an invariant violation, e.g. an identifier that fails
// to parse after being read back from the store.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

func Internal(format string, args ...any) error {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// Status maps an error to the HTTP status code and the message exposed to the
// client. Store and internal failures are surfaced generically.
func Status(err error) (int, string) {
	var (
		notFound  *NotFoundError
		duplicate *DuplicateError
		invalid   *ValidationError
		store     *StoreError
		internal  *InternalError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	case errors.As(err, &duplicate):
		return http.StatusConflict, duplicate.Message
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Message
	case errors.As(err, &store):
		return http.StatusInternalServerError, "Database error"
	case errors.As(err, &internal):
		return http.StatusInternalServerError, internal.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
