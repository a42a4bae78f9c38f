// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/api"
	"github.com/tomtom215/houseoracle/internal/artifacts"
	"github.com/tomtom215/houseoracle/internal/config"
	"github.com/tomtom215/houseoracle/internal/logging"
	"github.com/tomtom215/houseoracle/internal/predict"
	"github.com/tomtom215/houseoracle/internal/recommend"
	"github.com/tomtom215/houseoracle/internal/supervisor"
	"github.com/tomtom215/houseoracle/internal/supervisor/services"
)

// statsInterval is how often recommendation counters are logged.
const statsInterval = 5 * time.Minute

// fallbackWarnRatio is the fallback share per interval logged as a warning.
const fallbackWarnRatio = 0.5

// app holds the wired components of a running server.
type app struct {
	registry *artifacts.Registry
	engine   *recommend.Engine
	handler  http.Handler
	server   *http.Server
	tree     *supervisor.SupervisorTree
}

// newApp loads artifacts once and wires the predictor, recommender, router
// and supervisor tree. A registry with load failures is served degraded
// unless cfg.Artifacts.RequireComplete is set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := artifacts.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}

	registry, err := artifacts.LoadRegistry(ctx, store, cfg.Artifacts.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	if !registry.Complete() {
		if cfg.Artifacts.RequireComplete {
			return nil, fmt.Errorf("load artifacts: %w", registry.Err())
		}
		logger.Warn().
			Strs("failed", registry.Failures()).
			Msg("Some artifacts failed to load, serving degraded")
	}

	predictor, err := predict.NewPredictor(registry, logger)
	if err != nil {
		return nil, err
	}
	engine, err := recommend.NewEngine(recommendConfig(&cfg.Recommend), registry, logger)
	if err != nil {
		return nil, fmt.Errorf("recommendation engine: %w", err)
	}

	handler, err := api.NewHandler(predictor, engine, registry, logger)
	if err != nil {
		return nil, err
	}
	router := api.NewRouter(handler, middlewareConfig(cfg)).SetupChi()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout + 5*time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("supervisor tree: %w", err)
	}
	tree.AddModelService(services.NewRecommendStatsService(engine, services.RecommendStatsConfig{
		Interval:          statsInterval,
		FallbackWarnRatio: fallbackWarnRatio,
	}, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	return &app{
		registry: registry,
		engine:   engine,
		handler:  router,
		server:   server,
		tree:     tree,
	}, nil
}

// recommendConfig maps the koanf recommend section onto the engine config.
func recommendConfig(c *config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		Clusters:      c.NumClusters,
		Seed:          c.Seed,
		MaxIterations: c.MaxIterations,
		Restarts:      c.NInit,
		Tolerance:     c.Tolerance,
		FallbackSize:  c.FallbackSize,
		Breaker: recommend.BreakerConfig{
			Enabled:          c.Breaker.Enabled,
			FailureThreshold: c.Breaker.FailureThreshold,
			Timeout:          c.Breaker.Timeout,
			Interval:         c.Breaker.Interval,
			HalfOpenRequests: c.Breaker.HalfOpenRequests,
		},
	}
}

// middlewareConfig maps the security and server sections onto the router
// middleware config.
func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	mw.RequestTimeout = cfg.Server.Timeout
	return mw
}
