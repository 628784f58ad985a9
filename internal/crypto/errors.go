package crypto

import "errors"

// Token verification errors. All of them mean "not authenticated" to the
// outside world; they exist separately so callers can log and count them.
var (
	// ErrMissingToken is returned when no bearer credential was supplied.
	ErrMissingToken = errors.New("missing token")

	// ErrMalformedToken is returned when the credential is not a well-formed
	// signed token (wrong segment count, bad encoding, bad claims payload).
	ErrMalformedToken = errors.New("malformed token")

	// ErrBadSignature is returned when the signature does not match the
	// header and claims, or the token was signed with another algorithm.
	ErrBadSignature = errors.New("token signature is invalid")

	// ErrTokenExpired is returned when the signature is valid but the
	// expiry instant has passed.
	ErrTokenExpired = errors.New("token is expired")
)

var (
	// ErrInvalidTokenParams is returned by NewTokenManager when the sign key
	// is empty or the validity window is not positive.
	ErrInvalidTokenParams = errors.New("invalid params for token manager")

	// ErrEmptyAccountID is returned by Issue when no account identifier is given.
	ErrEmptyAccountID = errors.New("empty account id")

	// ErrEmptyPassword is returned by Hash for an empty plaintext.
	ErrEmptyPassword = errors.New("empty password")
)
