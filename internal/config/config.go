package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the marketplace service.
// Environment variables are automatically parsed from the MARKET_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage driver: memory, sqlite, or postgres
	DBDriver    string `envconfig:"DB_DRIVER" default:"memory"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Session tokens
	TokenSecret string        `envconfig:"TOKEN_SECRET" default:""`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// Health probe cadence
	HealthInterval time.Duration `envconfig:"HEALTH_INTERVAL" default:"10s"`
}

// ResolveDefaults validates the driver selection and fills in driver-specific
// defaults.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		c.DBDriver = "memory"
	}

	allowedDB := map[string]bool{"memory": true, "sqlite": true, "postgres": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "sqlite" && c.SQLitePath == "" {
		c.SQLitePath = "campustrade.db"
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
	}
	if c.TokenSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("TOKEN_SECRET is required in production")
		}
		c.TokenSecret = "dev-secret-do-not-use-in-production"
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Environment variables should be prefixed with MARKET_
// Example: MARKET_HTTP_PORT, MARKET_DB_DRIVER
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MARKET", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:    EnvTesting,
		HTTPPort:       8080,
		DBDriver:       "memory",
		TokenSecret:    "test-secret",
		TokenTTL:       time.Hour,
		HealthInterval: time.Second,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
