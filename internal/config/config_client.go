package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Client holds the settings of the portal command-line client.
type Client struct {
	// ServerAddress is the base URL or host:port of the portal server.
	// Env: PORTAL_SERVER_ADDRESS
	ServerAddress string `env:"PORTAL_SERVER_ADDRESS"`

	// RequestTimeout bounds a single API call.
	// Env: PORTAL_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"PORTAL_REQUEST_TIMEOUT"`

	// Token is a bearer token from an earlier signup or login.
	// Env: PORTAL_TOKEN
	Token string `env:"PORTAL_TOKEN"`

	// LogLevel is a zerolog level name.
	// Env: PORTAL_LOG_LEVEL
	LogLevel string `env:"PORTAL_LOG_LEVEL"`
}

const (
	DefaultClientServerAddress  = "http://localhost:8080"
	DefaultClientRequestTimeout = 10 * time.Second
	DefaultClientLogLevel       = "warn"
)

// ErrInvalidClientConfigs indicates invalid client settings.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// GetClientConfig builds the client configuration from the environment and
// the leading flags of args. Flags override env values. The arguments left
// after the flags (the subcommand and its own flags) are returned as rest.
func GetClientConfig(args []string) (cfg *Client, rest []string, err error) {
	envCfg := &Client{}
	if err = parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	flagsCfg, rest, err := parseClientFlags(args)
	if err != nil {
		return nil, nil, err
	}

	cfg = envCfg
	if err = mergo.Merge(cfg, flagsCfg, mergo.WithOverride); err != nil {
		return nil, nil, fmt.Errorf("error merging client configs: %w", err)
	}
	if err = mergo.Merge(cfg, clientDefaults()); err != nil {
		return nil, nil, fmt.Errorf("error applying default client configs: %w", err)
	}

	if err = cfg.validate(); err != nil {
		return nil, nil, err
	}

	return cfg, rest, nil
}

// parseClientFlags parses the global client flags.
//
// Flags:
//
//	-a server address (URL or host:port)
//	-timeout request timeout (e.g., "5s")
//	-token bearer token
//	-log-level log level
func parseClientFlags(args []string) (*Client, []string, error) {
	fs := flag.NewFlagSet("portal", flag.ContinueOnError)

	cfg := &Client{}
	fs.StringVar(&cfg.ServerAddress, "a", "", "Server address")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", 0, "Request timeout (e.g., 5s)")
	fs.StringVar(&cfg.Token, "token", "", "Bearer token")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, fs.Args(), nil
}

func clientDefaults() *Client {
	return &Client{
		ServerAddress:  DefaultClientServerAddress,
		RequestTimeout: DefaultClientRequestTimeout,
		LogLevel:       DefaultClientLogLevel,
	}
}

func (cfg *Client) validate() error {
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive", ErrInvalidClientConfigs)
	}
	return nil
}
