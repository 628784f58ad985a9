package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/service"
	"github.com/MKhiriev/student-portal/internal/utils"
)

// Client-facing messages.
const (
	msgNotAuthorized      = "Not authorized"
	msgServerError        = "Server error"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUserNotFound       = "User not found"
	msgPasswordIncorrect  = "Current password is incorrect"
	msgForbidden          = "Forbidden"

	msgUserRegistered  = "User registered successfully"
	msgPasswordUpdated = "Password updated successfully"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                     http.StatusBadRequest,
	ErrInvalidAuthorizationHeader:      http.StatusUnauthorized,
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrAccountAlreadyExists:    http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusBadRequest,
	service.ErrCurrentPasswordMismatch: http.StatusBadRequest,
	service.ErrUnauthenticated:         http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrAccountNotFound:         http.StatusNotFound,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,
	errRouteNotFound:                   http.StatusNotFound,

	service.ErrStorageFailure:        http.StatusInternalServerError,
	service.ErrTokenCreationFailed:   http.StatusInternalServerError,
	service.ErrPasswordHashingFailed: http.StatusInternalServerError,
}

var errorMessageMap = map[error]string{
	service.ErrAccountAlreadyExists:    msgUserExists,
	service.ErrInvalidCredentials:      msgInvalidCredentials,
	service.ErrCurrentPasswordMismatch: msgPasswordIncorrect,
	service.ErrForbidden:               msgForbidden,
	service.ErrAccountNotFound:         msgUserNotFound,
	errRouteNotFound:                   http.StatusText(http.StatusNotFound),
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the message sent to the client for err. Every 401
// and 500 gets the same text whatever the cause.
func messageFromError(err error, status int) string {
	switch status {
	case http.StatusUnauthorized:
		return msgNotAuthorized
	case http.StatusInternalServerError:
		return msgServerError
	}

	for target, msg := range errorMessageMap {
		if errors.Is(err, target) {
			return msg
		}
	}

	// validation failures describe the offending fields
	return err.Error()
}

// writeError logs err and answers with the mapped status and a {msg} body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteMessage(w, messageFromError(err, status), status)
}
