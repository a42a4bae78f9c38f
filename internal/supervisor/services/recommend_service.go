// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/recommend"
)

// defaultStatsInterval applies when RecommendStatsConfig.Interval is not positive.
const defaultStatsInterval = 5 * time.Minute

// RecommendStats reports recommendation engine counters.
// *recommend.Engine implements it.
type RecommendStats interface {
	Stats() recommend.Stats
}

// RecommendStatsConfig holds configuration for the stats service.
type RecommendStatsConfig struct {
	// Interval between reports.
	Interval time.Duration

	// FallbackWarnRatio logs at warn level when the share of requests served
	// by the random fallback within an interval reaches it. Zero disables.
	FallbackWarnRatio float64
}

// RecommendStatsService periodically logs how many recommendations were
// served and how many degraded to the random fallback.
type RecommendStatsService struct {
	engine RecommendStats
	config RecommendStatsConfig
	logger zerolog.Logger
	name   string

	lastRequests  int64
	lastFallbacks int64
}

// NewRecommendStatsService creates a new stats service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRecommendStatsService(engine RecommendStats, cfg RecommendStatsConfig, logger zerolog.Logger) *RecommendStatsService {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultStatsInterval
	}
	return &RecommendStatsService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "recommend-stats").Logger(),
		name:   "recommend-stats",
	}
}

// Serve implements suture.Service.
func (s *RecommendStatsService) Serve(ctx context.Context) error {
	// Restarts report deltas from the engine's current totals.
	start := s.engine.Stats()
	s.lastRequests, s.lastFallbacks = start.Requests, start.Fallbacks

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.report()
			return ctx.Err()
		case <-ticker.C:
			s.report()
		}
	}
}

// report logs the counters accumulated since the previous report.
func (s *RecommendStatsService) report() {
	stats := s.engine.Stats()
	requests := stats.Requests - s.lastRequests
	fallbacks := stats.Fallbacks - s.lastFallbacks
	s.lastRequests, s.lastFallbacks = stats.Requests, stats.Fallbacks

	if requests == 0 {
		return
	}

	ratio := float64(fallbacks) / float64(requests)
	event := s.logger.Info()
	if s.config.FallbackWarnRatio > 0 && ratio >= s.config.FallbackWarnRatio {
		event = s.logger.Warn()
	}
	event.
		Int64("requests", requests).
		Int64("fallbacks", fallbacks).
		Float64("fallback_ratio", ratio).
		Int64("total_requests", stats.Requests).
		Msg("Recommendation stats")
}

// String returns the service name for logging.
func (s *RecommendStatsService) String() string {
	return s.name
}
