package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/student-portal/internal/config"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/metrics"
	"github.com/MKhiriev/student-portal/internal/service"
	"github.com/MKhiriev/student-portal/models"
)

const (
	testAccountID  = "0190a0b0-0000-7000-8000-000000000001"
	otherAccountID = "0190a0b0-0000-7000-8000-000000000002"
	testToken      = "header.payload.signature"
)

var testView = models.AccountView{
	AccountID: testAccountID,
	Name:      "Ann",
	Email:     "ann@example.com",
	Skills:    models.StringList{"go"},
}

// ---- Fake: AccountService ----

type fakeAccountService struct {
	signupFn        func(ctx context.Context, req models.SignupRequest) (models.AccountView, models.Token, error)
	loginFn         func(ctx context.Context, req models.LoginRequest) (models.AccountView, models.Token, error)
	getProfileFn    func(ctx context.Context, accountID string) (models.AccountView, error)
	updateProfileFn func(ctx context.Context, accountID string, update models.ProfileUpdate) (models.AccountView, error)
	resetPasswordFn func(ctx context.Context, accountID string, req models.PasswordResetRequest) error
}

func (f *fakeAccountService) Signup(ctx context.Context, req models.SignupRequest) (models.AccountView, models.Token, error) {
	if f.signupFn == nil {
		return models.AccountView{}, models.Token{}, nil
	}
	return f.signupFn(ctx, req)
}

func (f *fakeAccountService) Login(ctx context.Context, req models.LoginRequest) (models.AccountView, models.Token, error) {
	if f.loginFn == nil {
		return models.AccountView{}, models.Token{}, nil
	}
	return f.loginFn(ctx, req)
}

func (f *fakeAccountService) GetProfile(ctx context.Context, accountID string) (models.AccountView, error) {
	if f.getProfileFn == nil {
		return models.AccountView{}, service.ErrAccountNotFound
	}
	return f.getProfileFn(ctx, accountID)
}

func (f *fakeAccountService) UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate) (models.AccountView, error) {
	if f.updateProfileFn == nil {
		return models.AccountView{}, nil
	}
	return f.updateProfileFn(ctx, accountID, update)
}

func (f *fakeAccountService) ResetPassword(ctx context.Context, accountID string, req models.PasswordResetRequest) error {
	if f.resetPasswordFn == nil {
		return nil
	}
	return f.resetPasswordFn(ctx, accountID, req)
}

// ---- Fake: AuthService ----

// fakeAuthService accepts testToken for testAccountID and rejects anything
// else as unauthenticated.
type fakeAuthService struct {
	verified []string
}

func (f *fakeAuthService) IssueToken(_ context.Context, accountID string) (models.Token, error) {
	return models.Token{SignedString: testToken, AccountID: accountID}, nil
}

func (f *fakeAuthService) VerifyToken(_ context.Context, tokenString string) (models.Token, error) {
	f.verified = append(f.verified, tokenString)
	if tokenString != testToken {
		return models.Token{}, service.ErrUnauthenticated
	}
	return models.Token{SignedString: tokenString, AccountID: testAccountID}, nil
}

// ---- Fake: AppInfoService ----

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

func (f *fakeAppInfoService) GetBuildInfo(context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(f.version, "N/A", "N/A")
}

// ---- Fake: metrics collector ----

type httpRecord struct {
	route  string
	status int
}

type recordingCollector struct {
	metrics.Nop

	mu         sync.Mutex
	requests   []httpRecord
	rejections []string
}

func (c *recordingCollector) RecordHTTPRequest(route string, status int, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, httpRecord{route: route, status: status})
}

func (c *recordingCollector) RecordTokenRejection(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejections = append(c.rejections, kind)
}

// ---- Helpers ----

func newTestHandler(accounts *fakeAccountService) *Handler {
	if accounts == nil {
		accounts = &fakeAccountService{}
	}

	return NewHandler(
		&service.Services{
			AccountService: accounts,
			AuthService:    &fakeAuthService{},
			AppInfoService: &fakeAppInfoService{version: "test-version"},
		},
		config.Server{RequestTimeout: time.Second, AllowedOrigins: []string{"*"}},
		metrics.Nop{},
		prometheus.NewRegistry(),
		logger.Nop(),
	)
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}
