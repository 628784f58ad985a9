package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKhiriev/student-portal/internal/validators"
	"github.com/MKhiriev/student-portal/models"
)

// AccountValidationService validates account requests before they reach
// the wrapped AccountService. Rule violations are returned as
// [ErrInvalidDataProvided].
type AccountValidationService struct {
	inner     AccountService
	validator validators.Validator
}

func NewAccountValidationService() AccountServiceWrapper {
	return &AccountValidationService{
		validator: validators.NewAccountValidator(),
	}
}

func (v *AccountValidationService) Signup(ctx context.Context, req models.SignupRequest) (models.AccountView, models.Token, error) {
	req.Email = models.NormalizeEmail(req.Email)
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AccountView{}, models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Signup(ctx, req)
}

func (v *AccountValidationService) Login(ctx context.Context, req models.LoginRequest) (models.AccountView, models.Token, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AccountView{}, models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AccountValidationService) GetProfile(ctx context.Context, accountID string) (models.AccountView, error) {
	if !isAccountID(accountID) {
		return models.AccountView{}, ErrAccountNotFound
	}

	return v.inner.GetProfile(ctx, accountID)
}

func (v *AccountValidationService) UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate) (models.AccountView, error) {
	if !isAccountID(accountID) {
		return models.AccountView{}, ErrAccountNotFound
	}
	if update.Email != nil {
		email := models.NormalizeEmail(*update.Email)
		update.Email = &email
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.AccountView{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateProfile(ctx, accountID, update)
}

func (v *AccountValidationService) ResetPassword(ctx context.Context, accountID string, req models.PasswordResetRequest) error {
	if !isAccountID(accountID) {
		return ErrAccountNotFound
	}
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ResetPassword(ctx, accountID, req)
}

func (v *AccountValidationService) Wrap(wrapped AccountService) AccountService {
	v.inner = wrapped
	return v
}

// isAccountID reports whether id can name an account. Ids that are not
// UUIDs would otherwise reach the uuid column and fail as a storage error.
func isAccountID(id string) bool {
	return uuid.Validate(id) == nil
}
