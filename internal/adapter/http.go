package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/utils"
	"github.com/MKhiriev/student-portal/models"
)

type httpPortalAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPPortalAdapter constructs an HTTP/REST implementation of
// [PortalAdapter]. address may omit the scheme, in which case http is
// assumed. A positive timeout replaces the client's default.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPPortalAdapter(address string, timeout time.Duration, logger *logger.Logger) (PortalAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &httpPortalAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpPortalAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpPortalAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpPortalAdapter) Logout() {
	h.SetToken("")
}

// Signup implements [PortalAdapter]. It POSTs req to /api/users/signup.
func (h *httpPortalAdapter) Signup(ctx context.Context, req models.SignupRequest) (models.AccountView, error) {
	var result models.AuthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/users/signup")
	if err != nil {
		return models.AccountView{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountView{}, err
	}

	h.SetToken(result.Token)
	h.logger.Debug().Str("account_id", result.User.AccountID).Msg("signed up")

	return result.User, nil
}

// Login implements [PortalAdapter]. It POSTs req to /api/users/login.
func (h *httpPortalAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AccountView, error) {
	var result models.AuthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/users/login")
	if err != nil {
		return models.AccountView{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountView{}, err
	}

	h.SetToken(result.Token)
	h.logger.Debug().Str("account_id", result.User.AccountID).Msg("logged in")

	return result.User, nil
}

func (h *httpPortalAdapter) GetProfile(ctx context.Context, accountID string) (models.AccountView, error) {
	var view models.AccountView
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", accountID).
		SetResult(&view).
		Get("/api/users/{id}")
	if err != nil {
		return models.AccountView{}, fmt.Errorf("get profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountView{}, err
	}

	return view, nil
}

func (h *httpPortalAdapter) UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate) (models.AccountView, error) {
	token := h.Token()
	if token == "" {
		return models.AccountView{}, ErrNotAuthenticated
	}

	var view models.AccountView
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetPathParam("id", accountID).
		SetBody(update).
		SetResult(&view).
		Put("/api/users/{id}")
	if err != nil {
		return models.AccountView{}, fmt.Errorf("update profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AccountView{}, err
	}

	return view, nil
}

func (h *httpPortalAdapter) ResetPassword(ctx context.Context, accountID string, req models.PasswordResetRequest) error {
	token := h.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetPathParam("id", accountID).
		SetBody(req).
		Put("/api/users/{id}/reset-password")
	if err != nil {
		return fmt.Errorf("reset password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpPortalAdapter) Dashboard(ctx context.Context) (models.DashboardResponse, error) {
	token := h.Token()
	if token == "" {
		return models.DashboardResponse{}, ErrNotAuthenticated
	}

	var result models.DashboardResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&result).
		Get("/api/dashboard")
	if err != nil {
		return models.DashboardResponse{}, fmt.Errorf("dashboard request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DashboardResponse{}, err
	}

	return result, nil
}

func (h *httpPortalAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/api/version/")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
