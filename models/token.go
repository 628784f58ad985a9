package models

import "time"

// Token is a bearer session token issued on signup or login.
//
// It is never persisted: the server reconstructs and validates it purely
// from the signed string on every protected request.
type Token struct {
	// SignedString is the compact JWS form (header.payload.signature)
	// handed to the client.
	SignedString string `json:"-"`

	// AccountID is the identity the token is bound to (the "sub" claim).
	AccountID string `json:"-"`

	// ExpiresAt is the absolute instant after which the token is rejected.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact serialized token.
func (t Token) String() string {
	return t.SignedString
}
