// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from
// environment variables, with a .env file picked up in development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the
// environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"APP_PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"

	// Site identity
	SiteName string `env:"SITE_NAME" envDefault:"BrandPress"`
	HomeSlug string `env:"HOME_SLUG" envDefault:"home"`

	// Page source: a backend API base URL or a local pages directory.
	// Exactly one must be set.
	BackendURL string `env:"BACKEND_URL"`
	PagesDir   string `env:"PAGES_DIR"`

	// Font provider CSS endpoint; the default is the Google Fonts API.
	FontsCSSURL string `env:"FONTS_CSS_URL"`

	// Valkey pub/sub for refresh signals (optional).
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	RefreshChannel string `env:"REFRESH_CHANNEL" envDefault:"brandpress:refresh"`

	// Interval polling of engagement counters; zero disables.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"0"`

	// Per-IP request limit per minute for public routes; zero disables.
	RateLimit int `env:"RATE_LIMIT" envDefault:"120"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present (development
// convenience; missing files are not an error).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.BackendURL == "" && cfg.PagesDir == "" {
		return nil, fmt.Errorf("either BACKEND_URL or PAGES_DIR must be set")
	}
	if cfg.BackendURL != "" && cfg.PagesDir != "" {
		return nil, fmt.Errorf("BACKEND_URL and PAGES_DIR are mutually exclusive")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ValkeyEnabled reports whether a pub/sub endpoint is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}
