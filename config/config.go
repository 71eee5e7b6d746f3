// Package config loads the service configuration from environment variables.
// Values are parsed with caarlos0/env and then validated as a whole, so a
// misconfigured deployment reports every problem at once instead of the first.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Store drivers selected from the DATABASE_URL scheme.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

const (
	minPoolSize = 1
	maxPoolSize = 100
)

// DatabaseConfig holds settings for the relational store and its pool.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
}

// Driver returns the store driver implied by URL.
// An empty URL selects the in-memory store.
func (c DatabaseConfig) Driver() string {
	switch {
	case c.URL == "":
		return DriverMemory
	case strings.HasPrefix(c.URL, "postgres://"), strings.HasPrefix(c.URL, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(c.URL, "mysql://"):
		return DriverMySQL
	default:
		return ""
	}
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	Issuer    string `env:"JWT_ISSUER" envDefault:"simple-to-do-list"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        `env:"PORT" envDefault:"8081"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ReadTimeout        time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout       time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout        time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// LogConfig selects the slog level and output format.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Database DatabaseConfig
	Auth     AuthConfig
	Server   ServerConfig
	Log      LogConfig

	// Warnings are non-fatal adjustments made during validation (e.g. clamped pool size).
	Warnings []string
}

// Load reads the configuration from the process environment.
func Load() (*AppConfig, error) {
	return LoadFrom(nil)
}

// LoadFrom reads the configuration from environ, or from the process
// environment when environ is nil.
func LoadFrom(environ map[string]string) (*AppConfig, error) {
	var cfg AppConfig
	var errors []string

	var err error
	if environ == nil {
		err = env.Parse(&cfg)
	} else {
		err = env.Parse(&cfg, env.Options{Environment: environ})
	}
	if err != nil {
		errors = append(errors, err.Error())
	}

	cfg.validate(&errors)

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}
	return &cfg, nil
}

func (c *AppConfig) validate(errors *[]string) {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		*errors = append(*errors, "missing required environment variable: JWT_SECRET")
	}

	if c.Database.Driver() == "" {
		scheme := c.Database.URL
		if u, err := url.Parse(c.Database.URL); err == nil && u.Scheme != "" {
			scheme = u.Scheme
		}
		*errors = append(*errors, fmt.Sprintf("unsupported DATABASE_URL scheme %q: expected postgres:// or mysql://", scheme))
	}

	if c.Database.MaxConns < minPoolSize {
		c.Warnings = append(c.Warnings, fmt.Sprintf("DB_MAX_CONNS (%d) is less than minimum %d, clamping", c.Database.MaxConns, minPoolSize))
		c.Database.MaxConns = minPoolSize
	}
	if c.Database.MaxConns > maxPoolSize {
		c.Warnings = append(c.Warnings, fmt.Sprintf("DB_MAX_CONNS (%d) is greater than maximum %d, clamping", c.Database.MaxConns, maxPoolSize))
		c.Database.MaxConns = maxPoolSize
	}
	if c.Database.ConnectTimeout <= 0 {
		*errors = append(*errors, "DB_CONNECT_TIMEOUT must be positive")
	}

	if c.Server.Port == "" {
		*errors = append(*errors, "PORT must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		*errors = append(*errors, "SHUTDOWN_TIMEOUT must be positive")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		*errors = append(*errors, fmt.Sprintf("invalid LOG_FORMAT %q: expected json or text", c.Log.Format))
	}
}
