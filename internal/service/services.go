package service

import (
	"fmt"

	"github.com/MKhiriev/student-portal/internal/config"
	"github.com/MKhiriev/student-portal/internal/crypto"
	"github.com/MKhiriev/student-portal/internal/logger"
	"github.com/MKhiriev/student-portal/internal/metrics"
	"github.com/MKhiriev/student-portal/internal/store"
	"github.com/MKhiriev/student-portal/internal/utils"
	"github.com/MKhiriev/student-portal/models"
)

type Services struct {
	AccountService AccountService
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices builds the service layer on top of storages. Token options
// are passed to the token manager, which lets tests inject a clock.
func NewServices(
	storages *store.Storages,
	cfg config.App,
	buildInfo models.AppBuildInfo,
	collector metrics.AuthCollector,
	logger *logger.Logger,
	tokenOptions ...crypto.TokenManagerOption,
) (*Services, error) {
	tokenManager, err := crypto.NewTokenManager(cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration, tokenOptions...)
	if err != nil {
		return nil, fmt.Errorf("error creating token manager: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(tokenManager, collector, logger)
	accountService := NewAccountService(
		storages.AccountRepository,
		crypto.NewPasswordHasher(cfg.PasswordHashCost),
		authService,
		utils.NewUUIDGenerator(),
		collector,
		logger,
	)

	return &Services{
		AccountService: NewAccountValidationService().Wrap(accountService),
		AuthService:    authService,
		AppInfoService: appInfoService,
	}, nil
}
