package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordHashCost is the bcrypt work factor used when the
// configuration does not set one.
const DefaultPasswordHashCost = 10

// maxPasswordBytes is the longest input bcrypt reads.
const maxPasswordBytes = 72

// bcryptHasher is the bcrypt-backed implementation of [PasswordHasher].
// bcrypt embeds the random salt and the cost in its output, so no separate
// salt column is needed.
type bcryptHasher struct {
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt cost.
// Costs outside [bcrypt.MinCost, bcrypt.MaxCost] fall back to
// [DefaultPasswordHashCost].
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultPasswordHashCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash implements [PasswordHasher]. Plaintexts longer than 72 bytes are
// rejected by bcrypt instead of being silently truncated.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify implements [PasswordHasher]. bcrypt compares digests in constant
// time; any error, including a corrupted stored hash, is a mismatch.
// Plaintexts Hash would refuse never match, since bcrypt ignores every byte
// past the 72nd.
func (h *bcryptHasher) Verify(plaintext, stored string) bool {
	if len(plaintext) > maxPasswordBytes {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}
