// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
//
// Variables are read unprefixed (DATABASE_URL, LOG_LEVEL, ...) so the same
// names work in .env files and platform dashboards.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Diag     DiagConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds connection settings for either backend.
type DatabaseConfig struct {
	// URL is the connection string. Schemes postgres:// and postgresql://
	// select PostgreSQL; sqlite:// (or a bare file path) selects SQLite.
	// Required: there is no fallback database.
	URL string `envconfig:"DATABASE_URL"`

	// MaxOpenConns is the maximum number of open connections (default: 15,
	// matching a base pool of 5 with an overflow of 10). Ignored for SQLite,
	// which is pinned to a single connection.
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"15"`

	// MaxIdleConns is the maximum number of idle connections (default: 5)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetime recycles connections after this duration (default: 1h)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// DiagConfig holds settings for the diagnostic endpoints.
type DiagConfig struct {
	// Environment is the deployment environment name reported by
	// /env-check and /version (default: unknown).
	Environment string `envconfig:"ENVIRONMENT" default:"unknown"`

	// ServiceName is reported by /health.
	ServiceName string `envconfig:"SERVICE_NAME" default:"starterkit"`

	// AppVersion is reported by /version. Override per release.
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`

	// EnvVars is the list of variable names /env-check reports presence
	// for. Values are never exposed, only whether each name is set.
	EnvVars []string `envconfig:"DIAG_ENV_VARS" default:"DATABASE_URL,ENVIRONMENT,LOG_LEVEL,REDIS_URL,SENTRY_DSN"`

	// Token guards mutating diagnostic routes (sequence fix). When empty
	// those routes reject every request.
	Token string `envconfig:"DIAG_TOKEN"`
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Redacted returns the database URL with any userinfo stripped, safe for
// logging.
func (c *DatabaseConfig) Redacted() string {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" {
		return c.URL
	}
	u.User = nil
	return u.String()
}

// Load reads configuration from environment variables.
//
// When DATABASE_URL is not already present in the environment, a local
// .env file is loaded first. Platforms that inject DATABASE_URL
// (Railway, Heroku, ...) therefore always win over the checked-in .env.
// A missing .env file is not an error.
func Load() (*Config, error) {
	if os.Getenv("DATABASE_URL") == "" {
		_ = godotenv.Load()
	}

	var cfg Config

	// Load each config section separately to keep env var names flat.
	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Diag); err != nil {
		return nil, fmt.Errorf("failed to load diagnostics config: %w", err)
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set: " +
			"set it in .env for local development or in the platform dashboard for production")
	}

	return &cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main.go during startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
