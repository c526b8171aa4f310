// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskboard.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing config fixture: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
environment: development
api:
  base_url: https://api.taskboard.example
  timeout: 10s
log:
  level: debug
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.BaseURL != "https://api.taskboard.example" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
environment: production
api:
  base_url: http://localhost:8000
production:
  api:
    base_url: https://api.taskboard.example
  log:
    level: warn
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.BaseURL != "https://api.taskboard.example" {
		t.Errorf("override not applied, BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("override not applied, Level = %q", cfg.Log.Level)
	}
}

func TestInactiveOverrideSectionIgnored(t *testing.T) {
	path := writeConfig(t, `
environment: development
production:
  api:
    base_url: https://api.taskboard.example
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("inactive override applied, BaseURL = %q", cfg.API.BaseURL)
	}
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"unknown environment": "environment: testing\n",
		"bad timeout":         "api:\n  timeout: fast\n",
		"bad log level":       "log:\n  level: verbose\n",
		"empty base URL":      "api:\n  base_url: \"\"\n  timeout: 30s\n",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, contents)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadWithoutEnvVarUsesDefaults(t *testing.T) {
	t.Setenv("TASKBOARD_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL == "" || cfg.RequestTimeout() <= 0 {
		t.Errorf("defaults incomplete: %+v", cfg)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	t.Setenv("TASKBOARD_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestSlogLevel(t *testing.T) {
	levels := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for name, want := range levels {
		if got := (LogConfig{Level: name}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
