// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor
// principles — there is no config file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
//
// API_PORT, FRONT_ORIGIN and JWT_SECRET are required — the process refuses
// to start without them. A missing signing secret in particular must never
// fall back to a default, or every issued session token would be forgeable.
type Config struct {
	// HTTP listen port
	APIPort int `env:"API_PORT,required,notEmpty"`

	// Allowed cross-origin front-end address, e.g. "http://localhost:5173"
	FrontOrigin string `env:"FRONT_ORIGIN,required,notEmpty"`

	// HMAC secret for signing session tokens
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// Path to the SQLite database file
	DBPath string `env:"DB_PATH" envDefault:"data/snippets.db"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}

// SlogLevel translates the LOG_LEVEL string into a slog.Level.
// Unknown values fall back to Info rather than failing startup.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
