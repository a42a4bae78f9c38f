// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Timeout bounds a single request, including prediction and recommendation.
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ArtifactsConfig locates the fitted model artifacts.
type ArtifactsConfig struct {
	// Dir is the artifact store directory.
	Dir string `koanf:"dir"`

	// Version pins every artifact to one version. 0 loads the latest of each.
	Version int `koanf:"version"`

	// RequireComplete refuses to start when any artifact failed to load.
	// When false the server starts degraded and /health/ready reports 503.
	RequireComplete bool `koanf:"require_complete"`
}

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_NUM_CLUSTERS: diversified picks per request (default: 3)
//   - RECOMMEND_SEED: k-means seed (default: 0)
//   - RECOMMEND_FALLBACK_SIZE: random rows served on failure (default: 3)
//   - RECOMMEND_BREAKER_ENABLED: guard neighbor search (default: true)
type RecommendConfig struct {
	NumClusters   int             `koanf:"num_clusters"`
	Seed          int64           `koanf:"seed"`
	MaxIterations int             `koanf:"max_iterations"`
	NInit         int             `koanf:"n_init"`
	Tolerance     float64         `koanf:"tolerance"`
	FallbackSize  int             `koanf:"fallback_size"`
	Breaker       BreakerSettings `koanf:"breaker"`
}

// BreakerSettings configures the recommendation circuit breaker.
type BreakerSettings struct {
	Enabled          bool          `koanf:"enabled"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
	Timeout          time.Duration `koanf:"timeout"`
	Interval         time.Duration `koanf:"interval"`
	HalfOpenRequests uint32        `koanf:"half_open_requests"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// String renders a one-line summary safe for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s artifacts=%s version=%d clusters=%d log=%s/%s",
		c.Server.Addr(), c.Artifacts.Dir, c.Artifacts.Version,
		c.Recommend.NumClusters, c.Logging.Level, c.Logging.Format)
}
