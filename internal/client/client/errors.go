package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("invalid input")
	ErrAlreadyExists      = errors.New("already exists")
	ErrEmailTaken         = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrNotFound           = errors.New("not found")
)
