package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/student-portal/internal/crypto"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/metrics"
	"github.com/MKhiriev/student-portal/internal/store"
	"github.com/MKhiriev/student-portal/models"
)

// dummyPassword is hashed once and verified against on logins for unknown
// emails, so both login failures cost one hash verification.
const dummyPassword = "student-portal-dummy-password"

// accountService is the concrete implementation of AccountService.
type accountService struct {
	accountRepository store.AccountRepository
	hasher            crypto.PasswordHasher
	authService       AuthService
	idGenerator       IDGenerator
	metrics           metrics.AuthCollector

	// now stamps CreatedAt and UpdatedAt.
	now func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string

	logger *logger.Logger
}

func NewAccountService(
	accountRepository store.AccountRepository,
	hasher crypto.PasswordHasher,
	authService AuthService,
	idGenerator IDGenerator,
	collector metrics.AuthCollector,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		hasher:            hasher,
		authService:       authService,
		idGenerator:       idGenerator,
		metrics:           collector,
		now:               time.Now,
		logger:            logger,
	}
}

// Signup registers a new account and logs it in.
//
// Steps: existence check by email, password hashing, persisting the account
// with empty lists for unspecified list attributes, token issuing. A
// concurrent signup that slips past the existence check is still rejected by
// the store's unique email constraint.
func (s *accountService) Signup(ctx context.Context, req models.SignupRequest) (models.AccountView, models.Token, error) {
	log := logger.FromContext(ctx)
	email := models.NormalizeEmail(req.Email)

	_, err := s.accountRepository.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info().Str("email", email).Msg("signup rejected: email already registered")
		s.metrics.RecordSignup(metrics.OutcomeRejected)
		return models.AccountView{}, models.Token{}, ErrAccountAlreadyExists
	case !errors.Is(err, store.ErrNoAccountWasFound):
		s.metrics.RecordSignup(metrics.OutcomeError)
		return models.AccountView{}, models.Token{}, s.storageError(ctx, "FindAccountByEmail", err)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("email", email).Msg("password hashing failed")
		s.metrics.RecordSignup(metrics.OutcomeError)
		return models.AccountView{}, models.Token{}, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	now := s.now().UTC()
	account, err := s.accountRepository.CreateAccount(ctx, models.Account{
		AccountID:        s.idGenerator.Generate(),
		Email:            email,
		PasswordHash:     passwordHash,
		Name:             req.Name,
		Phone:            req.Phone,
		Age:              int(req.Age),
		Gender:           req.Gender,
		Institution:      req.Institution,
		Skills:           req.Skills.OrEmpty(),
		Interests:        req.Interests.OrEmpty(),
		CompletedCourses: req.CompletedCourses.OrEmpty(),
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		if errors.Is(err, store.ErrAccountAlreadyExists) {
			log.Info().Str("email", email).Msg("signup rejected by unique email constraint")
			s.metrics.RecordSignup(metrics.OutcomeRejected)
			return models.AccountView{}, models.Token{}, ErrAccountAlreadyExists
		}
		s.metrics.RecordSignup(metrics.OutcomeError)
		return models.AccountView{}, models.Token{}, s.storageError(ctx, "CreateAccount", err)
	}

	token, err := s.authService.IssueToken(ctx, account.AccountID)
	if err != nil {
		s.metrics.RecordSignup(metrics.OutcomeError)
		return models.AccountView{}, models.Token{}, err
	}

	log.Info().Str("account_id", account.AccountID).Msg("account registered")
	s.metrics.RecordSignup(metrics.OutcomeSuccess)
	return account.View(), token, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password both yield [ErrInvalidCredentials].
func (s *accountService) Login(ctx context.Context, req models.LoginRequest) (models.AccountView, models.Token, error) {
	log := logger.FromContext(ctx)
	email := models.NormalizeEmail(req.Email)

	account, err := s.accountRepository.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoAccountWasFound) {
			s.hasher.Verify(req.Password, s.getDummyHash())
			log.Info().Msg("login rejected")
			s.metrics.RecordLogin(metrics.OutcomeRejected)
			return models.AccountView{}, models.Token{}, ErrInvalidCredentials
		}
		s.metrics.RecordLogin(metrics.OutcomeError)
		return models.AccountView{}, models.Token{}, s.storageError(ctx, "FindAccountByEmail", err)
	}

	if !s.hasher.Verify(req.Password, account.PasswordHash) {
		log.Info().Msg("login rejected")
		s.metrics.RecordLogin(metrics.OutcomeRejected)
		return models.AccountView{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := s.authService.IssueToken(ctx, account.AccountID)
	if err != nil {
		s.metrics.RecordLogin(metrics.OutcomeError)
		return models.AccountView{}, models.Token{}, err
	}

	log.Info().Str("account_id", account.AccountID).Msg("account logged in")
	s.metrics.RecordLogin(metrics.OutcomeSuccess)
	return account.View(), token, nil
}

func (s *accountService) GetProfile(ctx context.Context, accountID string) (models.AccountView, error) {
	account, err := s.accountRepository.FindAccountByID(ctx, accountID)
	if err != nil {
		return models.AccountView{}, s.translateStoreError(ctx, "FindAccountByID", err)
	}

	return account.View(), nil
}

// UpdateProfile applies a partial update of the non-secret profile fields.
// A new email is normalized the same way as at signup.
func (s *accountService) UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate) (models.AccountView, error) {
	if update.IsEmpty() {
		return models.AccountView{}, ErrInvalidDataProvided
	}

	if update.Email != nil {
		email := models.NormalizeEmail(*update.Email)
		update.Email = &email
	}

	account, err := s.accountRepository.UpdateProfile(ctx, accountID, update, s.now().UTC())
	if err != nil {
		return models.AccountView{}, s.translateStoreError(ctx, "UpdateProfile", err)
	}

	logger.FromContext(ctx).Info().Str("account_id", accountID).Msg("profile updated")
	return account.View(), nil
}

// ResetPassword replaces the password after re-verifying the current one.
// On mismatch the stored hash is left untouched. Issued tokens stay valid.
func (s *accountService) ResetPassword(ctx context.Context, accountID string, req models.PasswordResetRequest) error {
	log := logger.FromContext(ctx)

	account, err := s.accountRepository.FindAccountByID(ctx, accountID)
	if err != nil {
		s.metrics.RecordPasswordReset(outcomeOf(err))
		return s.translateStoreError(ctx, "FindAccountByID", err)
	}

	if !s.hasher.Verify(req.CurrentPassword, account.PasswordHash) {
		log.Info().Str("account_id", accountID).Msg("password reset rejected: current password mismatch")
		s.metrics.RecordPasswordReset(metrics.OutcomeRejected)
		return ErrCurrentPasswordMismatch
	}

	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Str("account_id", accountID).Msg("password hashing failed")
		s.metrics.RecordPasswordReset(metrics.OutcomeError)
		return fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	if err = s.accountRepository.UpdatePasswordHash(ctx, accountID, passwordHash, s.now().UTC()); err != nil {
		s.metrics.RecordPasswordReset(outcomeOf(err))
		return s.translateStoreError(ctx, "UpdatePasswordHash", err)
	}

	log.Info().Str("account_id", accountID).Msg("password updated")
	s.metrics.RecordPasswordReset(metrics.OutcomeSuccess)
	return nil
}

func (s *accountService) getDummyHash() string {
	s.dummyHashOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.Err(err).Msg("error hashing dummy password")
			return
		}
		s.dummyHash = hash
	})

	return s.dummyHash
}

// translateStoreError maps the store sentinels onto service errors.
func (s *accountService) translateStoreError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNoAccountWasFound):
		return ErrAccountNotFound
	case errors.Is(err, store.ErrAccountAlreadyExists):
		return ErrAccountAlreadyExists
	default:
		return s.storageError(ctx, op, err)
	}
}

// storageError logs err and returns [ErrStorageFailure]; the store error is
// not passed on to callers.
func (s *accountService) storageError(ctx context.Context, op string, err error) error {
	logger.FromContext(ctx).Err(err).
		Str("op", op).
		Bool("transient", errors.Is(err, store.ErrTemporarilyUnavailable)).
		Msg("storage failure")
	return ErrStorageFailure
}

func outcomeOf(err error) string {
	if errors.Is(err, store.ErrNoAccountWasFound) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
