// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a Go client for the student portal REST API.
//
// The primary abstraction is [PortalAdapter], which hides the transport
// details from callers such as frontends, CLIs and integration tests. The
// package ships an HTTP/REST implementation ([NewHTTPPortalAdapter]).
//
// Error responses are mapped from HTTP status codes by mapHTTPError so that
// callers can use [errors.Is] (e.g. [ErrUnauthorized] for 401). The server's
// {"msg": ...} text is kept in the error message.
package adapter

import (
	"context"

	"github.com/MKhiriev/student-portal/models"
)

// PortalAdapter defines communication with the student portal server.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type PortalAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Signup registers a new account. On success the returned token is
	// stored via SetToken.
	Signup(ctx context.Context, req models.SignupRequest) (models.AccountView, error)

	// Login authenticates with email and password. On success the returned
	// token is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.AccountView, error)

	// Logout discards the stored token. Tokens are not revoked server-side.
	Logout()

	GetProfile(ctx context.Context, accountID string) (models.AccountView, error)
	UpdateProfile(ctx context.Context, accountID string, update models.ProfileUpdate) (models.AccountView, error)
	ResetPassword(ctx context.Context, accountID string, req models.PasswordResetRequest) error

	// Dashboard fetches the protected dashboard of the token's account.
	Dashboard(ctx context.Context) (models.DashboardResponse, error)

	// Version returns the server's application version.
	Version(ctx context.Context) (string, error)
}
