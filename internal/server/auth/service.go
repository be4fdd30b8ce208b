// Package auth implements password hashing, stateless session tokens and a
// logout revocation list, and composes them into the Service used by the
// user-facing layers.
package auth

import (
	"context"
	"time"

	"github.com/dmitrijs2005/musicvideos/internal/logging"
)

// Credential is what gets persisted for a user at registration.
type Credential struct {
	Username     string
	PasswordHash string
}

// Service is the single entry point for authentication. It performs no I/O:
// persisting credentials and checking username uniqueness is up to the caller.
type Service struct {
	hasher   *Hasher
	issuer   *Issuer
	registry Revoker
	logger   logging.Logger
	now      func() time.Time
}

func NewService(h *Hasher, i *Issuer, r Revoker, l logging.Logger) *Service {
	return &Service{
		hasher:   h,
		issuer:   i,
		registry: r,
		logger:   l.With("module", "auth"),
		now:      i.now,
	}
}

// Register checks password strength and hashes it.
func (s *Service) Register(ctx context.Context, username, rawPassword string) (*Credential, error) {
	if !ValidatePasswordStrength(rawPassword) {
		return nil, ErrWeakPassword
	}

	digest, err := s.hasher.Hash(rawPassword)
	if err != nil {
		s.logger.Error(ctx, "error hashing password", "username", username, "error", err)
		return nil, err
	}

	return &Credential{Username: username, PasswordHash: digest}, nil
}

// Authenticate reports whether rawPassword matches storedDigest.
func (s *Service) Authenticate(ctx context.Context, rawPassword, storedDigest string) bool {
	return s.hasher.Verify(rawPassword, storedDigest)
}

// Login issues a session token for claims. Call it only after Authenticate
// succeeded.
func (s *Service) Login(ctx context.Context, claims Claims) (string, error) {
	token, err := s.issuer.Issue(claims)
	if err != nil {
		s.logger.Error(ctx, "error issuing token", "user_id", claims.UserID, "error", err)
		return "", err
	}
	return token, nil
}

// revocationKey identifies a token in the registry by its jti. Tokens
// without one (only unverifiable input reaches Logout that way) fall back to
// the raw string.
func revocationKey(token, id string) string {
	if id != "" {
		return "jti:" + id
	}
	return "raw:" + token
}

// Authorize returns the claims of a valid, unrevoked token. The caller cannot
// tell why a token was rejected; the reason is only logged.
func (s *Service) Authorize(ctx context.Context, token string) (*Claims, bool) {
	claims, id, reason := s.issuer.verify(token)
	if reason != "" {
		s.logger.Debug(ctx, "token rejected", "reason", reason)
		return nil, false
	}

	if s.registry.IsRevoked(revocationKey(token, id)) {
		s.logger.Debug(ctx, "token rejected", "reason", "revoked", "user_id", claims.UserID)
		return nil, false
	}

	return claims, true
}

// Logout revokes token. Tokens that do not verify are revoked too, with the
// longest possible lifetime, so the call never fails.
func (s *Service) Logout(ctx context.Context, token string) {
	expiresAt := s.now().Add(s.issuer.Validity())
	claims, id, reason := s.issuer.verify(token)
	if reason == "" {
		expiresAt = claims.ExpiresAt
	}

	s.registry.Revoke(revocationKey(token, id), expiresAt)
	s.logger.Info(ctx, "token revoked")
}
