package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/student-portal/internal/config"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/metrics"
	"github.com/MKhiriev/student-portal/internal/service"
)

type Handler struct {
	services *service.Services

	cfg      config.Server
	metrics  metrics.AuthCollector
	gatherer prometheus.Gatherer

	logger *logger.Logger
}

// NewHandler builds the REST handler. gatherer backs the /metrics endpoint;
// collector receives per-request HTTP metrics.
func NewHandler(
	services *service.Services,
	cfg config.Server,
	collector metrics.AuthCollector,
	gatherer prometheus.Gatherer,
	logger *logger.Logger,
) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		metrics:  collector,
		gatherer: gatherer,
		logger:   logger,
	}
}
