package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/student-portal/internal/crypto"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/metrics"
	"github.com/MKhiriev/student-portal/models"
)

// Token rejection kinds used in logs and metrics.
const (
	TokenMissing      = "missing"
	TokenMalformed    = "malformed"
	TokenBadSignature = "bad_signature"
	TokenExpired      = "expired"
)

// authService is the concrete implementation of AuthService on top of a
// [crypto.TokenManager].
type authService struct {
	tokenManager crypto.TokenManager
	metrics      metrics.AuthCollector
	logger       *logger.Logger
}

func NewAuthService(tokenManager crypto.TokenManager, collector metrics.AuthCollector, logger *logger.Logger) AuthService {
	return &authService{
		tokenManager: tokenManager,
		metrics:      collector,
		logger:       logger,
	}
}

// IssueToken returns a signed token bound to accountID.
func (a *authService) IssueToken(ctx context.Context, accountID string) (models.Token, error) {
	token, err := a.tokenManager.Issue(accountID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("account_id", accountID).Msg("token issuing failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// VerifyToken checks signature and expiry of tokenString.
//
// The failure kind is logged and counted, but every failure is returned as
// [ErrUnauthenticated] so callers answer all of them the same way. The
// underlying crypto error stays in the chain for errors.Is.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := a.tokenManager.Verify(tokenString)
	if err != nil {
		kind := TokenKind(err)
		logger.FromContext(ctx).Warn().Err(err).Str("kind", kind).Msg("token rejected")
		a.metrics.RecordTokenRejection(kind)
		return models.Token{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	return token, nil
}

// TokenKind names the reason a token was rejected.
func TokenKind(err error) string {
	switch {
	case errors.Is(err, crypto.ErrMissingToken):
		return TokenMissing
	case errors.Is(err, crypto.ErrBadSignature):
		return TokenBadSignature
	case errors.Is(err, crypto.ErrTokenExpired):
		return TokenExpired
	default:
		return TokenMalformed
	}
}
