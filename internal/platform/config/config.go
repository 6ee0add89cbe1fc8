// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (gateway, session store) via constructors.
  - Build-time backend: The backend base address is not part of the environment;
    it is fixed by the build (see [constants.BackendBaseURL]).
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/node/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the NODE web frontend.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Backend gateway
	GatewayTimeout     time.Duration `env:"GATEWAY_TIMEOUT"             envDefault:"5s"`
	ForwardCredentials bool          `env:"GATEWAY_FORWARD_CREDENTIALS" envDefault:"true"`

	// Session cookies
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Key-Value Cache (Redis). Empty disables the render cache.
	RedisURL       string        `env:"REDIS_URL"`
	RenderCacheTTL time.Duration `env:"RENDER_CACHE_TTL" envDefault:"10m"`

	// Cross-Origin Resource Sharing, comma separated origin suffixes
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.GatewayTimeout < 0 {
		return nil, fmt.Errorf("config: GATEWAY_TIMEOUT must not be negative, got %s", cfg.GatewayTimeout)
	}

	return cfg, nil
}

// BackendURL returns the base address of the NODE REST API chosen at build time.
func (c *Config) BackendURL() string {
	return constants.BackendBaseURL
}

// AllowedOrigins returns the configured CORS origin suffixes.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
