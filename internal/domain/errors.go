package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist in the collection.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrStorage is matched by every StorageError.
// Handlers should map this to HTTP 500 with the error's fixed message.
var ErrStorage = errors.New("storage operation failed")

// ValidationError carries every message produced while validating a trip.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError reports a failed write or remove against the key-value surface.
// Message is fixed per operation ("failed to save trip to local storage", ...)
// so callers can show it verbatim; Err keeps the underlying cause.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) succeed.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
