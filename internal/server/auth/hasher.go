package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Supported password hashing algorithms.
const (
	AlgorithmPBKDF2SHA256 = "pbkdf2-sha256"
	AlgorithmBcrypt       = "bcrypt"
	AlgorithmArgon2ID     = "argon2id"
)

const (
	saltLength     = 16
	pbkdf2KeyLen   = 32
	argon2KeyLen   = 32
	minPasswordLen = 8

	// Upper bounds on work factors read back from stored digests.
	maxPBKDF2Rounds    = 10_000_000
	maxArgon2MemoryKiB = 1 << 20
	maxArgon2Time      = 64
)

// randRead is a test seam for crypto/rand.
var randRead = rand.Read

// ab64 is the adapted base64 alphabet used by passlib digests: standard
// alphabet with '.' in place of '+', no padding.
var ab64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./").WithPadding(base64.NoPadding)

// HasherConfig selects the algorithm used for new digests and its work factor.
type HasherConfig struct {
	Algorithm       string
	PBKDF2Rounds    int
	BcryptCost      int
	Argon2Time      uint32
	Argon2MemoryKiB uint32
	Argon2Threads   uint8
}

// DefaultHasherConfig returns PBKDF2-SHA256 with 29000 rounds, which matches
// digests produced by passlib's pbkdf2_sha256 defaults.
func DefaultHasherConfig() HasherConfig {
	return HasherConfig{
		Algorithm:       AlgorithmPBKDF2SHA256,
		PBKDF2Rounds:    29000,
		BcryptCost:      bcrypt.DefaultCost,
		Argon2Time:      1,
		Argon2MemoryKiB: 64 * 1024,
		Argon2Threads:   4,
	}
}

// Hasher produces self-describing password digests. Verify accepts digests
// of every supported algorithm regardless of the configured one, so the
// default can change without invalidating stored credentials.
type Hasher struct {
	cfg HasherConfig
}

// NewHasher validates cfg and returns a Hasher.
func NewHasher(cfg HasherConfig) (*Hasher, error) {
	switch cfg.Algorithm {
	case AlgorithmPBKDF2SHA256:
		if cfg.PBKDF2Rounds < 1 {
			return nil, fmt.Errorf("pbkdf2 rounds must be positive, got %d", cfg.PBKDF2Rounds)
		}
	case AlgorithmBcrypt:
		if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost must be in [%d, %d], got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
		}
	case AlgorithmArgon2ID:
		if cfg.Argon2Time < 1 || cfg.Argon2MemoryKiB < 8 || cfg.Argon2Threads < 1 {
			return nil, fmt.Errorf("invalid argon2id parameters t=%d m=%d p=%d", cfg.Argon2Time, cfg.Argon2MemoryKiB, cfg.Argon2Threads)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}
	return &Hasher{cfg: cfg}, nil
}

// Hash computes a salted digest of password. Every call uses a fresh salt.
func (h *Hasher) Hash(password string) (string, error) {
	var (
		digest string
		err    error
	)

	switch h.cfg.Algorithm {
	case AlgorithmBcrypt:
		digest, err = h.hashBcrypt(password)
	case AlgorithmArgon2ID:
		digest, err = h.hashArgon2(password)
	default:
		digest, err = h.hashPBKDF2(password)
	}

	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return digest, nil
}

// Verify reports whether password matches digest. Malformed digests and
// internal failures yield false.
func (h *Hasher) Verify(password, digest string) bool {
	switch {
	case strings.HasPrefix(digest, "$"+AlgorithmPBKDF2SHA256+"$"):
		return verifyPBKDF2(password, digest)
	case strings.HasPrefix(digest, "$"+AlgorithmArgon2ID+"$"):
		return verifyArgon2(password, digest)
	case strings.HasPrefix(digest, "$2a$"), strings.HasPrefix(digest, "$2b$"), strings.HasPrefix(digest, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	default:
		return false
	}
}

// ValidatePasswordStrength requires at least 8 characters including a digit,
// an upper-case and a lower-case letter.
func ValidatePasswordStrength(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return false
	}

	var digit, upper, lower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return digit && upper && lower
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := randRead(salt); err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	return salt, nil
}

// $pbkdf2-sha256$<rounds>$<salt>$<checksum>
func (h *Hasher) hashPBKDF2(password string) (string, error) {
	salt, err := newSalt()
	if err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, h.cfg.PBKDF2Rounds, pbkdf2KeyLen, sha256.New)
	return fmt.Sprintf("$%s$%d$%s$%s", AlgorithmPBKDF2SHA256, h.cfg.PBKDF2Rounds, ab64.EncodeToString(salt), ab64.EncodeToString(key)), nil
}

func verifyPBKDF2(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 5 {
		return false
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds < 1 || rounds > maxPBKDF2Rounds {
		return false
	}
	salt, err := ab64.DecodeString(parts[3])
	if err != nil {
		return false
	}
	want, err := ab64.DecodeString(parts[4])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *Hasher) hashBcrypt(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cfg.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// $argon2id$v=19$m=<mem>,t=<time>,p=<threads>$<salt>$<key>
func (h *Hasher) hashArgon2(password string) (string, error) {
	salt, err := newSalt()
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, h.cfg.Argon2Time, h.cfg.Argon2MemoryKiB, h.cfg.Argon2Threads, argon2KeyLen)
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgorithmArgon2ID, argon2.Version,
		h.cfg.Argon2MemoryKiB, h.cfg.Argon2Time, h.cfg.Argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func verifyArgon2(password, digest string) bool {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var (
		memory  uint32
		time    uint32
		threads uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if memory < 8 || memory > maxArgon2MemoryKiB || time < 1 || time > maxArgon2Time || threads < 1 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
