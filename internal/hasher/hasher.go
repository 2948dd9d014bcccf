package hasher

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

var (
	ErrInvalidCost     = errors.New("bcrypt cost out of supported range")
	ErrMalformedDigest = errors.New("malformed password digest")
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// Hasher creates and verifies bcrypt password digests. Each digest embeds
// its own salt and cost, so changing the configured cost only affects new
// digests. Immutable after construction, safe for concurrent use.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given work factor.
func New(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d must be in [%d, %d]", ErrInvalidCost, cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &Hasher{cost: cost}, nil
}

// Cost returns the configured work factor.
func (h *Hasher) Cost() int { return h.cost }

// Hash derives a digest from the plaintext with a fresh random salt.
func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", ErrPasswordTooLong, err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A clean mismatch is
// (false, nil); an error means the digest itself could not be parsed.
func (h *Hasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}
}
