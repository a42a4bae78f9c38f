// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/artifacts/artifactstest"
	"github.com/tomtom215/houseoracle/internal/config"
)

// loadConfig loads configuration with the artifact store pointed at dir.
func loadConfig(t *testing.T, dir string, extra map[string]string) *config.Config {
	t.Helper()
	t.Setenv(config.ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(config.DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
	t.Setenv("ARTIFACTS_DIR", dir)
	for k, v := range extra {
		t.Setenv(k, v)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

func TestNewApp_ServesPredictions(t *testing.T) {
	dir := t.TempDir()
	artifactstest.WriteStore(t, dir)
	cfg := loadConfig(t, dir, nil)

	a, err := newApp(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	if !a.registry.Complete() {
		t.Fatalf("registry incomplete: %v", a.registry.Failures())
	}
	if a.server.Addr != cfg.Server.Addr() {
		t.Errorf("server addr = %q, want %q", a.server.Addr, cfg.Server.Addr())
	}

	body := `{"area": 10, "bedrooms": 4, "baths": 4, "location": "DHA Defence", "property_type": "house", "purpose": "SALE"}`
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /predict status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"predicted_price":`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}
}

func TestNewApp_DegradedOrRefused(t *testing.T) {
	dir := t.TempDir()

	cfg := loadConfig(t, dir, nil)
	a, err := newApp(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("empty store should start degraded: %v", err)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}

	cfg = loadConfig(t, dir, map[string]string{"ARTIFACTS_REQUIRE_ALL": "true"})
	if _, err := newApp(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("expected error when complete artifacts are required")
	}
}

func TestRecommendConfig_Mapping(t *testing.T) {
	dir := t.TempDir()
	cfg := loadConfig(t, dir, map[string]string{
		"RECOMMEND_SEED":            "7",
		"RECOMMEND_N_INIT":          "2",
		"RECOMMEND_BREAKER_TIMEOUT": "5s",
	})

	rc := recommendConfig(&cfg.Recommend)
	if rc.Clusters != 3 || rc.Seed != 7 || rc.Restarts != 2 {
		t.Errorf("Clusters=%d Seed=%d Restarts=%d, want 3, 7 and 2", rc.Clusters, rc.Seed, rc.Restarts)
	}
	if rc.Breaker.Timeout != 5*time.Second || !rc.Breaker.Enabled {
		t.Errorf("Breaker = %+v", rc.Breaker)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("mapped config should validate: %v", err)
	}

	mw := middlewareConfig(cfg)
	if mw.RateLimitRequests != cfg.Security.RateLimitReqs || mw.RequestTimeout != cfg.Server.Timeout {
		t.Errorf("middleware config = %+v", mw)
	}
}
