package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/student-portal/internal/metrics"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}
	router.Use(withGZipRequest)
	router.Use(middleware.Compress(5))

	router.Get("/api/version/", h.version)
	router.Method("GET", "/metrics", metrics.Handler(h.gatherer))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/signup", h.signup)
		r.Post("/api/users/login", h.login)
		r.Get("/api/users/{id}", h.getProfile)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/dashboard", h.dashboard)

		r.With(h.selfOnly).Put("/api/users/{id}", h.updateProfile)
		r.With(h.selfOnly).Put("/api/users/{id}/reset-password", h.resetPassword)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
