package store

import (
	"context"
	"time"

	"github.com/MKhiriev/student-portal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository is the persistence contract of the Account Store.
//
// Email uniqueness is enforced by the underlying storage: CreateAccount and
// UpdateProfile return [ErrAccountAlreadyExists] when the email is taken.
// Lookups of unknown accounts return [ErrNoAccountWasFound].
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	FindAccountByID(ctx context.Context, accountID string) (models.Account, error)
	UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate, updatedAt time.Time) (models.Account, error)
	UpdatePasswordHash(ctx context.Context, accountID, passwordHash string, updatedAt time.Time) error
}

// ErrorClassificator maps driver-specific errors onto an [ErrorClassification]
// so that repositories stay independent of the SQL dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
