// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/recommend"
)

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := NewRouter(fixtureHandler(t), nil).SetupChi()
	rec := serve(router, http.MethodGet, "/health/live", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "alive" {
		t.Errorf("status = %q, want alive", resp.Status)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		readiness   Readiness
		wantStatus  int
		wantMissing []string
	}{
		{"no readiness source", nil, http.StatusOK, nil},
		{"complete", stubReadiness{complete: true}, http.StatusOK, nil},
		{"partial", stubReadiness{failures: []string{"sale_predictor_pipeline", "sale_recommender"}}, http.StatusServiceUnavailable, []string{"sale_predictor_pipeline", "sale_recommender"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, err := NewHandler(&stubPredictor{}, &stubRecommender{}, tt.readiness, zerolog.Nop())
			if err != nil {
				t.Fatal(err)
			}
			rec := serve(NewRouter(h, nil).SetupChi(), http.MethodGet, "/health/ready", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(resp.Missing, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", resp.Missing, tt.wantMissing)
			}
		})
	}
}

func TestHealthReady_FixtureRegistry(t *testing.T) {
	t.Parallel()

	rec := serve(NewRouter(fixtureHandler(t), nil).SetupChi(), http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for a complete registry", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	router := NewRouter(fixtureHandler(t), nil).SetupChi()
	serve(router, http.MethodPost, "/predict", fmt.Sprintf(validBody, "rent"))

	rec := serve(router, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for _, name := range []string{"houseoracle_api_requests_total", "houseoracle_predictions_total"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()

	router := NewRouter(fixtureHandler(t), nil).SetupChi()

	rec := serve(router, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d, want 404", rec.Code)
	}
	rec = serve(router, http.MethodGet, "/predict", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /predict status = %d, want 405", rec.Code)
	}
	if got := decodeError(t, rec).Error; got != "Method not allowed" {
		t.Errorf("error = %q", got)
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	router := NewRouter(fixtureHandler(t), nil).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/predict", nil)
	req.Header.Set("Origin", "https://frontend.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://frontend.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("simple request Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_RestrictedCORS(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"https://allowed.example"}
	router := NewRouter(fixtureHandler(t), cfg).SetupChi()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://other.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	pred := &stubPredictor{price: 1}
	router := NewRouter(stubHandler(t, pred, &stubRecommender{result: &recommend.Result{}}), cfg).SetupChi()

	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, serve(router, http.MethodPost, "/predict", fmt.Sprintf(validBody, "rent")).Code)
	}
	if want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}; !slices.Equal(codes, want) {
		t.Errorf("status codes = %v, want %v", codes, want)
	}
	if pred.calls.Load() != 2 {
		t.Errorf("predictor calls = %d, want 2", pred.calls.Load())
	}

	// Health probes are outside the limited group.
	if rec := serve(router, http.MethodGet, "/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.RateLimitDisabled = true
	router := NewRouter(stubHandler(t, &stubPredictor{}, &stubRecommender{result: &recommend.Result{}}), cfg).SetupChi()

	for i := range 3 {
		if rec := serve(router, http.MethodPost, "/predict", fmt.Sprintf(validBody, "sale")); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, rec.Code)
		}
	}
}

func TestRouter_Headers(t *testing.T) {
	t.Parallel()

	router := NewRouter(fixtureHandler(t), nil).SetupChi()

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(fmt.Sprintf(validBody, "rent")))
	req.Header.Set("X-Request-ID", "client-trace-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
		"X-Request-ID":           "client-trace-1",
		"Content-Type":           "application/json",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	router := NewRouter(stubHandler(t, panicPredictor{}, &stubRecommender{}), nil).SetupChi()
	rec := serve(router, http.MethodPost, "/predict", fmt.Sprintf(validBody, "rent"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
