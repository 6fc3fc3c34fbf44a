package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/tunebox/tunebox/internal/apperr"
)

// Hasher produces and checks bcrypt digests. Each digest embeds its own salt
// and cost, so hashing the same password twice yields different digests.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost, or bcrypt.DefaultCost when cost is
// outside bcrypt's accepted range.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash returns the salted digest of plaintext.
func (h Hasher) Hash(plaintext string) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperr.ErrInvalidInput.WithMessage("password is too long")
		}
		return nil, err
	}
	return digest, nil
}

// Verify reports whether plaintext matches digest. Malformed digests never match.
func (h Hasher) Verify(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
