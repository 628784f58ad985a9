package crypto

import "github.com/MKhiriev/student-portal/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher turns a plaintext secret into a storable one-way hash and
// checks a plaintext secret against such a hash without reversing it.
//
// Every stored form carries its own random salt, so two calls of Hash on the
// same plaintext yield different outputs that both verify.
type PasswordHasher interface {
	// Hash returns the salted hash of plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches stored. A malformed stored
	// form never matches.
	Verify(plaintext, stored string) bool
}

// TokenManager issues and verifies signed, time-bounded bearer tokens that
// bind an account identifier.
type TokenManager interface {
	// Issue creates a token for accountID that expires after the configured
	// validity window.
	Issue(accountID string) (models.Token, error)

	// Verify checks the signature first and the expiry second, and returns
	// the bound account identifier. Errors are one of [ErrMissingToken],
	// [ErrMalformedToken], [ErrBadSignature] or [ErrTokenExpired].
	Verify(tokenString string) (models.Token, error)
}
