package service

import (
	"context"

	"github.com/MKhiriev/student-portal/models"
)

// AccountService implements the account lifecycle: registration, login,
// profile reads and updates, and password reset. Returned account data is
// always the redacted [models.AccountView].
type AccountService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.AccountView, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AccountView, models.Token, error)
	GetProfile(ctx context.Context, accountID string) (models.AccountView, error)
	UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate) (models.AccountView, error)
	ResetPassword(ctx context.Context, accountID string, req models.PasswordResetRequest) error
}

// AuthService issues and verifies bearer tokens. VerifyToken failures are
// always wrapped in [ErrUnauthenticated].
type AuthService interface {
	IssueToken(ctx context.Context, accountID string) (models.Token, error)
	VerifyToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// AccountServiceWrapper defines middleware composition for AccountService.
// Implementations wrap an existing AccountService to add behavior such as
// validation.
type AccountServiceWrapper interface {
	Wrap(AccountService) AccountService
}

// IDGenerator produces identifiers for new accounts.
type IDGenerator interface {
	Generate() string
}
