// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/houseoracle/internal/ml"
)

// DiversityClusters is the fixed k-means cluster count. The response
// contract of at most three recommendations depends on it.
const DiversityClusters = 3

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Clusters is the number of diversified picks and must equal
	// DiversityClusters. Neighbor sets smaller than this are returned
	// without clustering.
	Clusters int `json:"clusters"`

	// Seed fixes k-means initialization so identical inputs always yield
	// identical picks.
	Seed int64 `json:"seed"`

	// MaxIterations bounds Lloyd iterations per k-means run.
	MaxIterations int `json:"max_iterations"`

	// Restarts is the number of k-means initializations; the lowest inertia wins.
	Restarts int `json:"restarts"`

	// Tolerance is the centroid shift below which k-means stops.
	Tolerance float64 `json:"tolerance"`

	// FallbackSize is the number of random catalog rows served when the
	// neighbor pipeline fails.
	FallbackSize int `json:"fallback_size"`

	// Breaker guards the neighbor pipeline per purpose.
	Breaker BreakerConfig `json:"breaker"`
}

// BreakerConfig configures the circuit breaker around neighbor search.
type BreakerConfig struct {
	// Enabled turns the breaker on. When off every request runs the pipeline.
	Enabled bool `json:"enabled"`

	// FailureThreshold is the consecutive failure count that opens the breaker.
	FailureThreshold uint32 `json:"failure_threshold"`

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration `json:"timeout"`

	// Interval clears failure counts while closed. Zero never clears.
	Interval time.Duration `json:"interval"`

	// HalfOpenRequests is the number of probe requests allowed when half-open.
	HalfOpenRequests uint32 `json:"half_open_requests"`
}

// DefaultConfig returns the default recommendation configuration.
func DefaultConfig() *Config {
	return &Config{
		Clusters:      DiversityClusters,
		Seed:          0,
		MaxIterations: 300,
		Restarts:      10,
		Tolerance:     1e-4,
		FallbackSize:  3,
		Breaker: BreakerConfig{
			Enabled:          true,
			FailureThreshold: 5,
			Timeout:          30 * time.Second,
			Interval:         time.Minute,
			HalfOpenRequests: 1,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Clusters != DiversityClusters {
		return fmt.Errorf("recommend.clusters must be %d, got %d", DiversityClusters, c.Clusters)
	}
	if c.FallbackSize < 1 {
		return fmt.Errorf("recommend.fallback_size must be at least 1, got %d", c.FallbackSize)
	}
	if err := c.KMeans().Validate(); err != nil {
		return fmt.Errorf("recommend kmeans: %w", err)
	}
	if c.Breaker.Enabled {
		if c.Breaker.FailureThreshold < 1 {
			return fmt.Errorf("recommend.breaker.failure_threshold must be at least 1, got %d", c.Breaker.FailureThreshold)
		}
		if c.Breaker.Timeout <= 0 {
			return fmt.Errorf("recommend.breaker.timeout must be positive, got %s", c.Breaker.Timeout)
		}
	}
	return nil
}

// KMeans returns the clustering parameters.
func (c *Config) KMeans() ml.KMeansConfig {
	return ml.KMeansConfig{
		Clusters:      c.Clusters,
		Seed:          c.Seed,
		MaxIterations: c.MaxIterations,
		Restarts:      c.Restarts,
		Tolerance:     c.Tolerance,
	}
}
