package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/service"
	"github.com/MKhiriev/student-portal/internal/utils"
	"github.com/MKhiriev/student-portal/models"
)

// accountIDParam is the chi URL parameter holding the account id.
const accountIDParam = "id"

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.AccountService.GetProfile(r.Context(), chi.URLParam(r, accountIDParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := chi.URLParam(r, accountIDParam)

	var update models.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AccountService.UpdateProfile(ctx, accountID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("account_id", accountID).Msg("profile updated")
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	accountID := chi.URLParam(r, accountIDParam)

	var req models.PasswordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.AccountService.ResetPassword(ctx, accountID, req); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("account_id", accountID).Msg("password updated")
	utils.WriteMessage(w, msgPasswordUpdated, http.StatusOK)
}

// dashboard greets the authenticated account. The profile prefetched by the
// auth middleware is used when present.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		writeError(w, r, service.ErrUnauthenticated)
		return
	}

	user, ok := utils.GetProfileFromContext(ctx)
	if !ok {
		var err error
		user, err = h.services.AccountService.GetProfile(ctx, accountID)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	utils.WriteJSON(w, models.DashboardResponse{
		Msg:  fmt.Sprintf("Welcome %s, this is your dashboard.", user.Name),
		User: user,
	}, http.StatusOK)
}
