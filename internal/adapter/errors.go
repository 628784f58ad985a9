package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")

	// ErrNotAuthenticated is returned before any request is sent when a
	// protected call is made without a stored token.
	ErrNotAuthenticated = errors.New("no token: sign up or log in first")
)
