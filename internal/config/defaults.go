package config

import "time"

// Default values applied to fields left empty by every source.
const (
	DefaultTokenIssuer      = "student-portal"
	DefaultTokenDuration    = time.Hour
	DefaultPasswordHashCost = 10
	DefaultLogLevel         = "info"
	DefaultDBDriver         = "pgx"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultAllowedOrigin    = "*"
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			PasswordHashCost: DefaultPasswordHashCost,
			LogLevel:         DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{Driver: DefaultDBDriver},
		},
		Server: Server{
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			AllowedOrigins:  []string{DefaultAllowedOrigin},
		},
	}
}
