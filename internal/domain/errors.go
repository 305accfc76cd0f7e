package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized          = errors.New("authentication required")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidRequest        = errors.New("invalid request")
	ErrInsufficientInventory = errors.New("not enough available tickets")
	ErrTransactionAborted    = errors.New("transaction aborted, retry the request")
	ErrNotFound              = errors.New("not found")
	ErrMethodNotAllowed      = errors.New("method not allowed")
	ErrConflict              = errors.New("conflict")
)

// ValidationError carries field-level detail and matches ErrInvalidRequest
// under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsDomainError reports whether err carries one of the package sentinels.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrUnauthorized, ErrForbidden, ErrInvalidRequest, ErrInsufficientInventory,
		ErrTransactionAborted, ErrNotFound, ErrMethodNotAllowed, ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
