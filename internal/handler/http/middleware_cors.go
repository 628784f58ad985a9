package http

import (
	"net/http"
	"slices"
	"strings"
)

const wildcardOrigin = "*"

// withCORS answers cross-origin requests from the configured origins.
// Preflight OPTIONS requests end here with 204.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	allowAll := slices.Contains(h.cfg.AllowedOrigins, wildcardOrigin)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if allowAll || slices.Contains(h.cfg.AllowedOrigins, origin) {
			header := w.Header()
			if allowAll {
				header.Set("Access-Control-Allow-Origin", wildcardOrigin)
			} else {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Add("Vary", "Origin")
			}
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			header.Set("Access-Control-Allow-Headers", strings.Join([]string{"Authorization", "Content-Type", traceIDHeader}, ", "))
			header.Set("Access-Control-Expose-Headers", traceIDHeader)
			header.Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
