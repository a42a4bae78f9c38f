// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if strings.TrimSpace(c.Artifacts.Dir) == "" {
		return fmt.Errorf("ARTIFACTS_DIR is required")
	}
	if c.Artifacts.Version < 0 {
		return fmt.Errorf("ARTIFACTS_VERSION must be >= 0 (0 = latest), got %d", c.Artifacts.Version)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.NumClusters != 3 {
		return fmt.Errorf("RECOMMEND_NUM_CLUSTERS must be 3, got %d", r.NumClusters)
	}
	if r.MaxIterations < 1 {
		return fmt.Errorf("RECOMMEND_MAX_ITER must be at least 1, got %d", r.MaxIterations)
	}
	if r.NInit < 1 {
		return fmt.Errorf("RECOMMEND_N_INIT must be at least 1, got %d", r.NInit)
	}
	if r.Tolerance < 0 {
		return fmt.Errorf("RECOMMEND_TOLERANCE must be non-negative, got %g", r.Tolerance)
	}
	if r.FallbackSize < 1 {
		return fmt.Errorf("RECOMMEND_FALLBACK_SIZE must be at least 1, got %d", r.FallbackSize)
	}
	if r.Breaker.Enabled {
		if r.Breaker.FailureThreshold < 1 {
			return fmt.Errorf("RECOMMEND_BREAKER_THRESHOLD must be at least 1, got %d", r.Breaker.FailureThreshold)
		}
		if r.Breaker.Timeout <= 0 {
			return fmt.Errorf("RECOMMEND_BREAKER_TIMEOUT must be positive, got %s", r.Breaker.Timeout)
		}
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin (use * for any)")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
