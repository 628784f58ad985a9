package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidAccountData wraps every rule violation reported for account
	// requests. The wrapped ozzo error carries the per-field messages.
	ErrInvalidAccountData = errors.New("invalid account data")

	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrSamePassword     = errors.New("new password must differ from the current one")
)
