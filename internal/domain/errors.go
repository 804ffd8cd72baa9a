package domain

import (
	"errors"
	"fmt"
)

// Typed error taxonomy. Handlers map these to HTTP status codes:
// ValidationError/InvalidInputError -> 400, NotFoundError -> 404,
// TransientError -> 503, everything else -> 500.

// ValidationError reports malformed input on a mutation: negative
// amount, missing product reference, unknown status value. Never
// retried; the message names the offending field so the admin UI can
// highlight it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown id on get/update/delete.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidInputError reports a resolver input the cart/pricing layer must
// never produce (negative or non-finite subtotal). It indicates a caller
// bug upstream and is surfaced loudly rather than clamped.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid resolver input: " + e.Reason
}

// TransientError wraps an I/O failure (timeout, broken connection) in
// the store or sync layer. Retryable by the caller with backoff, and
// must never be conflated with NotFoundError.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsInvalidInput(err error) bool {
	var t *InvalidInputError
	return errors.As(err, &t)
}

func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}
