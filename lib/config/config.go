// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Taskboard
// client.
//
// Configuration comes from a single YAML file specified by:
//   - the TASKBOARD_CONFIG environment variable, or
//   - a --config flag passed to the command.
//
// There are no fallbacks or automatic discovery beyond built-in
// defaults for every field, so a missing file still yields a working
// client against the default base URL. The file may contain
// environment sections (development, staging, production) that
// override base values when the environment matches — teams typically
// point each environment at a different API deployment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment identifies which API deployment the client targets.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the client configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// API configures the remote endpoint.
	API APIConfig `yaml:"api"`

	// SessionFile overrides the session file location. Empty means
	// the well-known path (see lib/session.DefaultPath).
	SessionFile string `yaml:"session_file"`

	// Log configures logging output.
	Log LogConfig `yaml:"log"`

	// Per-environment overrides, applied after the base values.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// APIConfig configures the remote endpoint.
type APIConfig struct {
	// BaseURL is the root of the Taskboard REST API.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each HTTP request, in time.ParseDuration syntax
	// (e.g. "30s"). The client makes exactly one attempt per
	// operation; this is the only time bound applied.
	Timeout string `yaml:"timeout"`
}

// RequestTimeout returns the parsed API timeout. Valid by the time
// LoadFile returns; the zero default is applied by Default().
func (c *Config) RequestTimeout() time.Duration {
	parsed, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return parsed
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is the minimum slog level: debug, info, warn, error.
	Level string `yaml:"level"`
}

// SlogLevel maps Level to its slog constant. Validation has already
// rejected unknown strings; the zero value maps to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Overrides contains the fields that can differ per environment.
type Overrides struct {
	API         *APIConfig `yaml:"api,omitempty"`
	SessionFile string     `yaml:"session_file,omitempty"`
	Log         *LogConfig `yaml:"log,omitempty"`
}

// Default returns the base configuration used before any file is
// applied.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: "30s",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from the path in TASKBOARD_CONFIG. When
// the variable is unset, the defaults are returned unchanged.
func Load() (*Config, error) {
	path := os.Getenv("TASKBOARD_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from a specific file path. The file is
// the single source of truth; environment variables do not override
// individual values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
	}
	if overrides.SessionFile != "" {
		c.SessionFile = overrides.SessionFile
	}
	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

func (c *Config) validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if parsed, err := time.ParseDuration(c.API.Timeout); err != nil || parsed <= 0 {
		return fmt.Errorf("api.timeout %q is not a positive duration", c.API.Timeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
