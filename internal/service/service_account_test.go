package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/metrics"
	"github.com/MKhiriev/student-portal/internal/mock"
	"github.com/MKhiriev/student-portal/internal/store"
	"github.com/MKhiriev/student-portal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testAccountID = "0190a0b0-0000-7000-8000-000000000001"
	testEmail     = "ada@example.com"
	testHash      = "$2a$04$stored-hash"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixedIDGenerator string

func (g fixedIDGenerator) Generate() string { return string(g) }

type accountServiceMocks struct {
	repo   *mock.MockAccountRepository
	hasher *mock.MockPasswordHasher
	tokens *mock.MockTokenManager
}

// newTestAccountSvc builds an accountService backed by mocks and a real
// authService over the mocked token manager.
func newTestAccountSvc(t *testing.T) (*accountService, accountServiceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := accountServiceMocks{
		repo:   mock.NewMockAccountRepository(ctrl),
		hasher: mock.NewMockPasswordHasher(ctrl),
		tokens: mock.NewMockTokenManager(ctrl),
	}

	auth := NewAuthService(m.tokens, metrics.Nop{}, logger.Nop())
	svc := NewAccountService(m.repo, m.hasher, auth, fixedIDGenerator(testAccountID), metrics.Nop{}, logger.Nop()).(*accountService)
	svc.now = func() time.Time { return testNow }

	return svc, m
}

func storedAccount() models.Account {
	return models.Account{
		AccountID:        testAccountID,
		Email:            testEmail,
		PasswordHash:     testHash,
		Name:             "Ada",
		Skills:           models.StringList{},
		Interests:        models.StringList{},
		CompletedCourses: models.StringList{},
		CreatedAt:        testNow,
		UpdatedAt:        testNow,
	}
}

func testToken() models.Token {
	return models.Token{SignedString: "signed.jwt.token", AccountID: testAccountID, ExpiresAt: testNow.Add(time.Hour)}
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestAccountService_Signup_Success(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	req := models.SignupRequest{
		Name:     "Ada",
		Email:    "  Ada@Example.com ",
		Password: "secret1",
		Skills:   models.StringList{"go"},
	}

	gomock.InOrder(
		m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(models.Account{}, store.ErrNoAccountWasFound),
		m.hasher.EXPECT().Hash("secret1").Return(testHash, nil),
		m.repo.EXPECT().CreateAccount(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, a models.Account) (models.Account, error) {
				assert.Equal(t, testAccountID, a.AccountID)
				assert.Equal(t, testEmail, a.Email)
				assert.Equal(t, testHash, a.PasswordHash)
				assert.Equal(t, models.StringList{"go"}, a.Skills)
				assert.NotNil(t, a.Interests)
				assert.NotNil(t, a.CompletedCourses)
				assert.Equal(t, testNow, a.CreatedAt)
				assert.Equal(t, testNow, a.UpdatedAt)
				return a, nil
			}),
		m.tokens.EXPECT().Issue(testAccountID).Return(testToken(), nil),
	)

	view, token, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, testAccountID, view.AccountID)
	assert.Equal(t, testEmail, view.Email)
	assert.Equal(t, testToken(), token)
}

func TestAccountService_Signup_DuplicateByExistenceCheck(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(storedAccount(), nil)
	// no hashing, no insert, no token

	_, _, err := svc.Signup(ctx, models.SignupRequest{Name: "Other", Email: testEmail, Password: "secret2"})
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestAccountService_Signup_DuplicateByConstraint(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(models.Account{}, store.ErrNoAccountWasFound)
	m.hasher.EXPECT().Hash("secret1").Return(testHash, nil)
	m.repo.EXPECT().CreateAccount(ctx, gomock.Any()).Return(models.Account{}, store.ErrAccountAlreadyExists)

	_, _, err := svc.Signup(ctx, models.SignupRequest{Name: "Ada", Email: testEmail, Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountAlreadyExists)
}

func TestAccountService_Signup_Failures(t *testing.T) {
	ctx := context.Background()
	req := models.SignupRequest{Name: "Ada", Email: testEmail, Password: "secret1"}
	dbErr := errors.New("connection refused")

	tests := []struct {
		name    string
		setup   func(m accountServiceMocks)
		wantErr error
	}{
		{
			name: "lookup fails",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(models.Account{}, dbErr)
			},
			wantErr: ErrStorageFailure,
		},
		{
			name: "hashing fails",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(models.Account{}, store.ErrNoAccountWasFound)
				m.hasher.EXPECT().Hash("secret1").Return("", errors.New("too long"))
			},
			wantErr: ErrPasswordHashingFailed,
		},
		{
			name: "insert fails",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(models.Account{}, store.ErrNoAccountWasFound)
				m.hasher.EXPECT().Hash("secret1").Return(testHash, nil)
				m.repo.EXPECT().CreateAccount(ctx, gomock.Any()).Return(models.Account{}, dbErr)
			},
			wantErr: ErrStorageFailure,
		},
		{
			name: "token issuing fails",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(models.Account{}, store.ErrNoAccountWasFound)
				m.hasher.EXPECT().Hash("secret1").Return(testHash, nil)
				m.repo.EXPECT().CreateAccount(ctx, gomock.Any()).Return(storedAccount(), nil)
				m.tokens.EXPECT().Issue(testAccountID).Return(models.Token{}, errors.New("sign failure"))
			},
			wantErr: ErrTokenCreationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAccountSvc(t)
			tt.setup(m)

			_, _, err := svc.Signup(ctx, req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, dbErr, "store errors must not leak")
		})
	}
}

func TestAccountService_Signup_RecordsMetrics(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	reg := prometheus.NewRegistry()
	svc.metrics = metrics.NewCollector(reg)
	ctx := context.Background()

	m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(storedAccount(), nil)

	_, _, err := svc.Signup(ctx, models.SignupRequest{Name: "Ada", Email: testEmail, Password: "secret1"})
	require.ErrorIs(t, err, ErrAccountAlreadyExists)

	expected := `
# HELP student_portal_signups_total Signup attempts by outcome.
# TYPE student_portal_signups_total counter
student_portal_signups_total{outcome="rejected"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "student_portal_signups_total"))
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAccountService_Login_Success(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(storedAccount(), nil)
	m.hasher.EXPECT().Verify("secret1", testHash).Return(true)
	m.tokens.EXPECT().Issue(testAccountID).Return(testToken(), nil)

	view, token, err := svc.Login(ctx, models.LoginRequest{Email: "ADA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, storedAccount().View(), view)
	assert.Equal(t, testToken(), token)
}

func TestAccountService_Login_UnknownEmailAndWrongPasswordLookTheSame(t *testing.T) {
	ctx := context.Background()

	svcUnknown, mu := newTestAccountSvc(t)
	mu.repo.EXPECT().FindAccountByEmail(ctx, "nobody@example.com").Return(models.Account{}, store.ErrNoAccountWasFound)
	mu.hasher.EXPECT().Hash(dummyPassword).Return("$2a$04$dummy", nil)
	// a hash verification still happens for unknown emails
	mu.hasher.EXPECT().Verify("secret1", "$2a$04$dummy").Return(false)

	_, tokenUnknown, errUnknown := svcUnknown.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})

	svcWrong, mw := newTestAccountSvc(t)
	mw.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(storedAccount(), nil)
	mw.hasher.EXPECT().Verify("wrong", testHash).Return(false)

	_, tokenWrong, errWrong := svcWrong.Login(ctx, models.LoginRequest{Email: testEmail, Password: "wrong"})

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.Empty(t, tokenUnknown.SignedString)
	assert.Empty(t, tokenWrong.SignedString)
}

func TestAccountService_Login_DummyHashComputedOnce(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	m.repo.EXPECT().FindAccountByEmail(ctx, gomock.Any()).Return(models.Account{}, store.ErrNoAccountWasFound).Times(3)
	m.hasher.EXPECT().Hash(dummyPassword).Return("$2a$04$dummy", nil).Times(1)
	m.hasher.EXPECT().Verify(gomock.Any(), "$2a$04$dummy").Return(false).Times(3)

	for range 3 {
		_, _, err := svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "x"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestAccountService_Login_StorageFailure(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	m.repo.EXPECT().FindAccountByEmail(ctx, testEmail).Return(models.Account{}, errors.New("boom"))

	_, _, err := svc.Login(ctx, models.LoginRequest{Email: testEmail, Password: "secret1"})
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ── GetProfile ───────────────────────────────────────────────────────────────

func TestAccountService_GetProfile(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "found"},
		{name: "not found", repoErr: store.ErrNoAccountWasFound, wantErr: ErrAccountNotFound},
		{name: "db failure", repoErr: errors.New("boom"), wantErr: ErrStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAccountSvc(t)
			account := storedAccount()
			if tt.repoErr != nil {
				account = models.Account{}
			}
			m.repo.EXPECT().FindAccountByID(ctx, testAccountID).Return(account, tt.repoErr)

			view, err := svc.GetProfile(ctx, testAccountID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, storedAccount().View(), view)
		})
	}
}

// ── UpdateProfile ────────────────────────────────────────────────────────────

func TestAccountService_UpdateProfile_NormalizesEmail(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()
	email := " New@Example.com"

	updated := storedAccount()
	updated.Email = "new@example.com"

	m.repo.EXPECT().UpdateProfile(ctx, testAccountID, gomock.Any(), testNow).
		DoAndReturn(func(_ context.Context, _ string, u models.ProfileUpdate, _ time.Time) (models.Account, error) {
			require.NotNil(t, u.Email)
			assert.Equal(t, "new@example.com", *u.Email)
			assert.Nil(t, u.Name)
			return updated, nil
		})

	view, err := svc.UpdateProfile(ctx, testAccountID, models.ProfileUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", view.Email)
}

func TestAccountService_UpdateProfile_Errors(t *testing.T) {
	ctx := context.Background()
	name := "Ada"

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "not found", repoErr: store.ErrNoAccountWasFound, wantErr: ErrAccountNotFound},
		{name: "email taken", repoErr: store.ErrAccountAlreadyExists, wantErr: ErrAccountAlreadyExists},
		{name: "db failure", repoErr: errors.New("boom"), wantErr: ErrStorageFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAccountSvc(t)
			m.repo.EXPECT().UpdateProfile(ctx, testAccountID, models.ProfileUpdate{Name: &name}, testNow).
				Return(models.Account{}, tt.repoErr)

			_, err := svc.UpdateProfile(ctx, testAccountID, models.ProfileUpdate{Name: &name})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAccountService_UpdateProfile_EmptyUpdate(t *testing.T) {
	svc, _ := newTestAccountSvc(t)

	_, err := svc.UpdateProfile(context.Background(), testAccountID, models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── ResetPassword ────────────────────────────────────────────────────────────

func TestAccountService_ResetPassword_Success(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	gomock.InOrder(
		m.repo.EXPECT().FindAccountByID(ctx, testAccountID).Return(storedAccount(), nil),
		m.hasher.EXPECT().Verify("secret1", testHash).Return(true),
		m.hasher.EXPECT().Hash("secret2").Return("$2a$04$new-hash", nil),
		m.repo.EXPECT().UpdatePasswordHash(ctx, testAccountID, "$2a$04$new-hash", testNow).Return(nil),
	)

	err := svc.ResetPassword(ctx, testAccountID, models.PasswordResetRequest{CurrentPassword: "secret1", NewPassword: "secret2"})
	assert.NoError(t, err)
}

func TestAccountService_ResetPassword_MismatchLeavesHashUntouched(t *testing.T) {
	svc, m := newTestAccountSvc(t)
	ctx := context.Background()

	m.repo.EXPECT().FindAccountByID(ctx, testAccountID).Return(storedAccount(), nil)
	m.hasher.EXPECT().Verify("wrong", testHash).Return(false)
	m.hasher.EXPECT().Hash(gomock.Any()).Times(0)
	m.repo.EXPECT().UpdatePasswordHash(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.ResetPassword(ctx, testAccountID, models.PasswordResetRequest{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.ErrorIs(t, err, ErrCurrentPasswordMismatch)
}

func TestAccountService_ResetPassword_Errors(t *testing.T) {
	ctx := context.Background()
	req := models.PasswordResetRequest{CurrentPassword: "secret1", NewPassword: "secret2"}

	tests := []struct {
		name    string
		setup   func(m accountServiceMocks)
		wantErr error
	}{
		{
			name: "unknown account",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByID(ctx, testAccountID).Return(models.Account{}, store.ErrNoAccountWasFound)
			},
			wantErr: ErrAccountNotFound,
		},
		{
			name: "hashing fails",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByID(ctx, testAccountID).Return(storedAccount(), nil)
				m.hasher.EXPECT().Verify("secret1", testHash).Return(true)
				m.hasher.EXPECT().Hash("secret2").Return("", errors.New("boom"))
			},
			wantErr: ErrPasswordHashingFailed,
		},
		{
			name: "account deleted meanwhile",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByID(ctx, testAccountID).Return(storedAccount(), nil)
				m.hasher.EXPECT().Verify("secret1", testHash).Return(true)
				m.hasher.EXPECT().Hash("secret2").Return("h", nil)
				m.repo.EXPECT().UpdatePasswordHash(ctx, testAccountID, "h", testNow).Return(store.ErrNoAccountWasFound)
			},
			wantErr: ErrAccountNotFound,
		},
		{
			name: "update fails",
			setup: func(m accountServiceMocks) {
				m.repo.EXPECT().FindAccountByID(ctx, testAccountID).Return(storedAccount(), nil)
				m.hasher.EXPECT().Verify("secret1", testHash).Return(true)
				m.hasher.EXPECT().Hash("secret2").Return("h", nil)
				m.repo.EXPECT().UpdatePasswordHash(ctx, testAccountID, "h", testNow).Return(errors.New("boom"))
			},
			wantErr: ErrStorageFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newTestAccountSvc(t)
			tt.setup(m)

			err := svc.ResetPassword(ctx, testAccountID, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
