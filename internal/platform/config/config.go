// Package config reads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures intake service configuration.
type Server struct {
	Addr         string        `env:"STATIONREG_ADDR" envDefault:":8080"`
	SessionTTL   time.Duration `env:"STATIONREG_SESSION_TTL" envDefault:"30m"`
	Theme        string        `env:"STATIONREG_THEME"`
	ThemeVariant string        `env:"STATIONREG_THEME_VARIANT"`
	LogLevel     string        `env:"STATIONREG_LOG_LEVEL" envDefault:"info"`
	CookieSecure bool          `env:"STATIONREG_COOKIE_SECURE"`
}

// ParseEnv fills target from environment variables using its env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv builds a Server config so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Server{}, fmt.Errorf("parse env: STATIONREG_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}
