// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account requests (signup, login, profile
// update, password reset) before they reach the account service.
//
// Rules are expressed with ozzo-validation. A failed check returns an error
// wrapping [ErrInvalidAccountData] whose text names the offending fields, which the
// HTTP layer passes on to the client with a 400 status.
package validators

import "context"

// Validator validates a request value. Passing field names restricts the
// check to those fields; with none, every rule for the value's type runs.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
