package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every lookup that finds no row.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateProposalNumber means another quotation already uses the
	// proposal number. The user can pick a different number and retry.
	ErrDuplicateProposalNumber = errors.New("proposal number already in use")

	ErrDuplicateFiscalID = errors.New("fiscal identifier already registered")
	ErrDuplicateLogin    = errors.New("login already in use")

	// ErrKitCycle rejects kit compositions that would contain themselves,
	// directly or through nested kits.
	ErrKitCycle = errors.New("kit composition would contain itself")

	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrInUse means the record is still referenced, e.g. a client with
	// quotations or a product listed in a kit.
	ErrInUse = errors.New("record is still referenced")
)

// Reasons carried by a ValidationError.
var (
	ErrNameRequired  = errors.New("name required")
	ErrInvalidNumber = errors.New("invalid number")
	ErrNoSelection   = errors.New("no selection")
	ErrRequired      = errors.New("required")
	ErrInvalidValue  = errors.New("invalid value")

	// ErrKitHasComponents rejects changing the type of a kit that still
	// lists components.
	ErrKitHasComponents = errors.New("kit still has components; clear its composition first")
)

// ValidationError reports malformed or missing user input. The operation
// that returned it made no change.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError builds a ValidationError for field with the given reason.
func NewValidationError(field string, reason error) *ValidationError {
	return &ValidationError{Field: field, Err: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a storage failure that is neither a validation
// problem nor a known conflict. It is surfaced as-is and never retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
