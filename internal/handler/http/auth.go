package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/utils"
	"github.com/MKhiriev/student-portal/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AccountService.Signup(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("account_id", user.AccountID).Msg("user registered")

	utils.WriteJSON(w, models.AuthResponse{
		Msg:   msgUserRegistered,
		Token: token.String(),
		User:  user,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, token, err := h.services.AccountService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("account_id", user.AccountID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.AuthResponse{
		Token: token.String(),
		User:  user,
	}, http.StatusOK)
}

// decodeJSON decodes the request body into dst. Trailing data after the
// first JSON value is ignored.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}
