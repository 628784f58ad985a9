package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/student-portal/internal/logger"
)

// version answers with the application version as plain text.
func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	if _, err := io.WriteString(w, h.services.AppInfoService.GetAppVersion(r.Context())); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing version")
	}
}
