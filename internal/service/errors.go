package service

import "errors"

var (
	// ErrInvalidDataProvided wraps request validation failures.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAccountAlreadyExists is returned by Signup and UpdateProfile when
	// the email belongs to another account.
	ErrAccountAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is the single login failure, whether the email
	// is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAccountNotFound = errors.New("user not found")

	// ErrCurrentPasswordMismatch is returned by ResetPassword when the
	// current password does not verify against the stored hash.
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect")

	// ErrUnauthenticated wraps every token verification failure.
	ErrUnauthenticated = errors.New("not authorized")

	// ErrForbidden is returned when an authenticated account acts on
	// another account's data.
	ErrForbidden = errors.New("access to another user's data is forbidden")

	// ErrStorageFailure hides the details of store errors from callers.
	ErrStorageFailure = errors.New("storage failure")

	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrPasswordHashingFailed = errors.New("password hashing failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
