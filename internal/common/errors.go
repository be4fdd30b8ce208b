// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	// ErrorEmailTaken is the ErrorAlreadyExists case for an email address.
	ErrorEmailTaken = fmt.Errorf("email %w", ErrorAlreadyExists)

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Login failures are reported with this single error whatever check failed.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid, expired, revoked or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
