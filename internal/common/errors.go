// Package common defines shared constants, sentinel errors and small helpers
// used across sharebin server components. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Store-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrStore           = errors.New("store error")

	// Access errors.
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrUnauthenticated = errors.New("unauthenticated")

	// Denied reasons returned by read-time admission.
	ErrExpired      = errors.New("content expired")
	ErrLimitReached = errors.New("view limit reached")

	// Registration / login errors.
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Validation.
	ErrValidation = errors.New("validation error")

	// Record decoding.
	ErrSchemaMismatch = errors.New("record schema mismatch")

	// Auth errors (invalid or malformed cookie token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrorInternal = errors.New("internal error")
)

// IsDenied reports whether err is one of the "content unavailable" outcomes.
func IsDenied(err error) bool {
	return errors.Is(err, ErrExpired) || errors.Is(err, ErrLimitReached)
}

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StoreError wraps an object store failure with the operation and key that
// produced it. The result matches both ErrStore and the wrapped cause.
func StoreError(op, key string, err error) error {
	return &storeError{op: op, key: key, err: err}
}

type storeError struct {
	op  string
	key string
	err error
}

func (e *storeError) Error() string {
	return fmt.Sprintf("store %s %q: %v", e.op, e.key, e.err)
}

func (e *storeError) Unwrap() []error {
	return []error{ErrStore, e.err}
}
