package auth

import "errors"

var (
	// ErrHashing means a password digest could not be produced. It points at
	// a broken environment, so callers should not retry.
	ErrHashing = errors.New("password hashing failed")

	// ErrWeakPassword is returned by Register for passwords that fail
	// ValidatePasswordStrength.
	ErrWeakPassword = errors.New("password too weak: need at least 8 characters with a digit, an upper-case and a lower-case letter")

	// ErrIssuance means a session token could not be signed.
	ErrIssuance = errors.New("token issuance failed")

	// ErrMissingSecret is returned by LoadSecret when no signing secret is
	// configured and the caller did not opt into the development secret.
	ErrMissingSecret = errors.New("SECRET_KEY is not configured")

	// ErrUnknownAlgorithm is returned by NewHasher for unsupported algorithms.
	ErrUnknownAlgorithm = errors.New("unknown password hashing algorithm")
)
