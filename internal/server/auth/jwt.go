package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenValidity is how long an issued session token stays valid.
const DefaultTokenValidity = 24 * time.Hour

// Claims is the authenticated identity carried by a session token.
type Claims struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// tokenClaims is the wire form of Claims.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
}

// Diagnostic reasons for a failed verification. They are only ever logged.
const (
	reasonMalformed    = "malformed"
	reasonBadSignature = "bad_signature"
	reasonExpired      = "expired"
	reasonInvalid      = "invalid"
)

// Issuer signs and verifies HS256 session tokens with a fixed key.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time

	// signingMethod is a test seam for signing failures.
	signingMethod jwt.SigningMethod
}

// IssuerOption customises an Issuer.
type IssuerOption func(*Issuer)

// WithClock replaces the wall clock, e.g. to mint already expired tokens in tests.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) { i.now = now }
}

// WithValidity overrides DefaultTokenValidity.
func WithValidity(d time.Duration) IssuerOption {
	return func(i *Issuer) { i.validity = d }
}

// NewIssuer returns an Issuer keyed by secret.
func NewIssuer(secret SecretKey, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		secret:        secret.bytes(),
		validity:      DefaultTokenValidity,
		now:           func() time.Time { return time.Now().UTC() },
		signingMethod: jwt.SigningMethodHS256,
	}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Validity returns the lifetime given to new tokens.
func (i *Issuer) Validity() time.Duration { return i.validity }

// Issue signs c. Any ExpiresAt in c is ignored: the token expires Validity()
// after the current time.
func (i *Issuer) Issue(c Claims) (string, error) {
	now := i.now()

	token := jwt.NewWithClaims(i.signingMethod, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(c.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		UserID:   c.UserID,
		Username: c.Username,
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssuance, err)
	}
	return signed, nil
}

// Verify returns the claims of a token with a valid signature whose expiry
// is still in the future. Every failure yields nil, false.
func (i *Issuer) Verify(token string) (*Claims, bool) {
	c, _, reason := i.verify(token)
	return c, reason == ""
}

// verify is Verify plus the token id (jti) and a diagnostic reason for
// logging. Signatures are decoded strictly, so no two distinct strings
// verify as the same token.
func (i *Issuer) verify(token string) (*Claims, string, string) {
	tc := &tokenClaims{}

	parsed, err := jwt.ParseWithClaims(token, tc,
		func(t *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, "", classify(err)
	}
	if !parsed.Valid {
		return nil, "", reasonInvalid
	}

	return &Claims{
		UserID:    tc.UserID,
		Username:  tc.Username,
		ExpiresAt: tc.ExpiresAt.Time.UTC(),
	}, tc.ID, ""
}

func classify(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return reasonMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return reasonBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return reasonExpired
	default:
		return reasonInvalid
	}
}
