package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/student-portal/internal/logger"
)

// unmatchedRoute labels requests that matched no route, keeping the metric
// cardinality bounded.
const unmatchedRoute = "unmatched"

// withLogging writes one access log line per request and records the request
// in the HTTP metrics under its route pattern.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		status := recorder.Status()

		route := unmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		h.metrics.RecordHTTPRequest(route, status, duration)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration", duration).
			Int("size", recorder.size).
			Send()
	})
}
