package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/student-portal/models"
	"github.com/golang-jwt/jwt/v5"
)

// jwtTokenManager is the HMAC-SHA256 JWT implementation of [TokenManager].
//
// The sign key is injected at construction and never read from the
// environment afterwards, so tests can use a throwaway key.
type jwtTokenManager struct {
	signKey       []byte
	issuer        string
	tokenDuration time.Duration

	// now is the clock used both for issuing and for expiry checks.
	now func() time.Time

	parser *jwt.Parser
}

// TokenManagerOption customizes a token manager built by [NewTokenManager].
type TokenManagerOption func(*jwtTokenManager)

// WithClock replaces the wall clock used to stamp and check tokens.
func WithClock(now func() time.Time) TokenManagerOption {
	return func(m *jwtTokenManager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewTokenManager constructs a [TokenManager] signing with signKey.
// Every token carries issuer as "iss" and expires tokenDuration after it
// was issued.
//
// Returns [ErrInvalidTokenParams] if signKey is empty or tokenDuration is
// not positive.
func NewTokenManager(signKey, issuer string, tokenDuration time.Duration, opts ...TokenManagerOption) (TokenManager, error) {
	if signKey == "" || tokenDuration <= 0 {
		return nil, ErrInvalidTokenParams
	}

	m := &jwtTokenManager{
		signKey:       []byte(signKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	}
	if issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(issuer))
	}
	m.parser = jwt.NewParser(parserOptions...)

	return m, nil
}

// Issue implements [TokenManager].
//
// The token includes the following standard claims:
//   - Subject   (sub): the account ID
//   - Issuer    (iss): the configured issuer, if any
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus the validity window
func (m *jwtTokenManager) Issue(accountID string) (models.Token, error) {
	if accountID == "" {
		return models.Token{}, ErrEmptyAccountID
	}

	now := m.now()
	expiresAt := now.Add(m.tokenDuration)
	claims := &jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		SignedString: signed,
		AccountID:    accountID,
		ExpiresAt:    expiresAt.Truncate(jwt.TimePrecision).UTC(),
	}, nil
}

// Verify implements [TokenManager].
func (m *jwtTokenManager) Verify(tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := m.parser.ParseWithClaims(tokenString, claims, m.keyFunc); err != nil {
		return models.Token{}, classifyJWTError(err)
	}

	if claims.Subject == "" {
		return models.Token{}, fmt.Errorf("%w: empty subject", ErrMalformedToken)
	}

	return models.Token{
		SignedString: tokenString,
		AccountID:    claims.Subject,
		ExpiresAt:    claims.ExpiresAt.UTC(),
	}, nil
}

func (m *jwtTokenManager) keyFunc(*jwt.Token) (any, error) {
	return m.signKey, nil
}

// classifyJWTError maps jwt parser errors onto the package error kinds while
// keeping the original error in the chain for logging. The parser verifies
// the signature before it validates claims, so an expired token with a bad
// signature is reported as a bad signature.
func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}
