package auth

import (
	"context"

	"github.com/dmitrijs2005/musicvideos/internal/logging"
)

// SecretMode tells LoadSecret what to do when no secret is configured.
type SecretMode int

const (
	// RequireSecret makes a missing secret a startup error.
	RequireSecret SecretMode = iota
	// DevModeSecret accepts the built-in development secret. Never use it
	// outside local development: anyone can forge tokens signed with it.
	DevModeSecret
)

const (
	devSecret = "musicvideos-insecure-dev-secret"

	// Shorter HS256 keys are accepted but logged.
	minSecretLength = 32
)

// SecretKey is the HMAC key used to sign and verify session tokens. It is
// immutable once loaded.
type SecretKey struct {
	key []byte
	dev bool
}

// NewSecretKey wraps a raw key. It does no validation; use LoadSecret for
// configuration values.
func NewSecretKey(key string) SecretKey {
	return SecretKey{key: []byte(key)}
}

// IsDev reports whether the key is the development fallback.
func (s SecretKey) IsDev() bool { return s.dev }

func (s SecretKey) bytes() []byte { return s.key }

// LoadSecret turns the configured secret into a SecretKey.
func LoadSecret(ctx context.Context, value string, mode SecretMode, logger logging.Logger) (SecretKey, error) {
	if value == "" {
		if mode != DevModeSecret {
			return SecretKey{}, ErrMissingSecret
		}
		logger.Warn(ctx, "SECRET_KEY not configured, using insecure development secret")
		return SecretKey{key: []byte(devSecret), dev: true}, nil
	}

	if len(value) < minSecretLength {
		logger.Warn(ctx, "SECRET_KEY is shorter than recommended", "min_length", minSecretLength)
	}

	return SecretKey{key: []byte(value)}, nil
}
