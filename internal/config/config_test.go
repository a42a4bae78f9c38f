// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

// isolate points config discovery at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
	for key := range envMappings {
		env := strings.ToUpper(key)
		if _, ok := os.LookupEnv(env); ok {
			t.Setenv(env, "")
			_ = os.Unsetenv(env)
		}
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Artifacts.Dir != "artifacts/models" {
		t.Errorf("Artifacts.Dir = %q, want artifacts/models", cfg.Artifacts.Dir)
	}
	if cfg.Recommend.NumClusters != 3 || cfg.Recommend.FallbackSize != 3 || cfg.Recommend.Seed != 0 {
		t.Errorf("Recommend = %+v, want 3 clusters, 3 fallback, seed 0", cfg.Recommend)
	}
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS should allow any origin")
	}
	if got := cfg.Server.Addr(); got != "0.0.0.0:5000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:5000", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5000 || cfg.Logging.Level != "info" {
		t.Errorf("unexpected defaults: %s", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)

	t.Setenv("PORT", "8080")
	t.Setenv("ARTIFACTS_DIR", "/srv/models")
	t.Setenv("RECOMMEND_BREAKER_TIMEOUT", "45s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Artifacts.Dir != "/srv/models" {
		t.Errorf("Artifacts.Dir = %q", cfg.Artifacts.Dir)
	}
	if cfg.Recommend.Breaker.Timeout != 45*time.Second {
		t.Errorf("Breaker.Timeout = %s, want 45s", cfg.Recommend.Breaker.Timeout)
	}
	if want := []string{"https://a.example", "https://b.example"}; !slices.Equal(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
  timeout: 10s
recommend:
  n_init: 4
  breaker:
    enabled: false
logging:
  format: console
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("env should override file: port = %d", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 10*time.Second {
		t.Errorf("Server.Timeout = %s, want 10s", cfg.Server.Timeout)
	}
	if cfg.Recommend.NInit != 4 || cfg.Recommend.Breaker.Enabled {
		t.Errorf("Recommend = %+v, want 4 restarts and breaker off", cfg.Recommend)
	}
	if cfg.Recommend.FallbackSize != 3 {
		t.Errorf("unset file keys keep defaults: fallback = %d", cfg.Recommend.FallbackSize)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)

	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("ARTIFACTS_VERSION=7\nLOG_FORMAT=console\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DotEnvPathEnvVar, envPath)
	// Real environment wins over .env.
	t.Setenv("LOG_FORMAT", "json")
	// godotenv sets ARTIFACTS_VERSION directly; restore it after the test.
	t.Setenv("ARTIFACTS_VERSION", "")
	_ = os.Unsetenv("ARTIFACTS_VERSION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Artifacts.Version != 7 {
		t.Errorf("Artifacts.Version = %d, want 7 from .env", cfg.Artifacts.Version)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, environment should win", cfg.Logging.Format)
	}
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"empty artifacts dir", func(c *Config) { c.Artifacts.Dir = " " }, true},
		{"negative version", func(c *Config) { c.Artifacts.Version = -1 }, true},
		{"zero clusters", func(c *Config) { c.Recommend.NumClusters = 0 }, true},
		{"five clusters", func(c *Config) { c.Recommend.NumClusters = 5 }, true},
		{"zero n_init", func(c *Config) { c.Recommend.NInit = 0 }, true},
		{"negative tolerance", func(c *Config) { c.Recommend.Tolerance = -1 }, true},
		{"zero fallback", func(c *Config) { c.Recommend.FallbackSize = 0 }, true},
		{"breaker threshold", func(c *Config) { c.Recommend.Breaker.FailureThreshold = 0 }, true},
		{"breaker disabled", func(c *Config) {
			c.Recommend.Breaker = BreakerSettings{Enabled: false}
		}, false},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, true},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"uppercase level", func(c *Config) { c.Logging.Level = "WARN" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"PORT":                        "server.port",
		"HTTP_HOST":                   "server.host",
		"RECOMMEND_BREAKER_THRESHOLD": "recommend.breaker.failure_threshold",
		"DISABLE_RATE_LIMIT":          "security.rate_limit_disabled",
		"HOME":                        "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
