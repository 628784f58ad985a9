// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization and identifier
// generation.
package utils

import (
	"context"

	"github.com/MKhiriev/student-portal/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccountIDCtxKey is the key used to store the authenticated account
// identifier in the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AccountIDCtxKey, accountID)
var AccountIDCtxKey = contextKey("accountID")

// ProfileCtxKey holds the public view of the authenticated account, when the
// auth middleware managed to load it.
var ProfileCtxKey = contextKey("profile")

// GetAccountIDFromContext retrieves the authenticated account identifier from
// the context.
//
// Returns ok == false when the value is missing, has an unexpected type or is
// empty.
func GetAccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountIDCtxKey).(string)
	return accountID, ok && accountID != ""
}

// WithAccountID returns a copy of ctx carrying accountID.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, AccountIDCtxKey, accountID)
}

// GetProfileFromContext retrieves the cached account view.
func GetProfileFromContext(ctx context.Context) (models.AccountView, bool) {
	profile, ok := ctx.Value(ProfileCtxKey).(models.AccountView)
	return profile, ok
}

func WithProfile(ctx context.Context, profile models.AccountView) context.Context {
	return context.WithValue(ctx, ProfileCtxKey, profile)
}
