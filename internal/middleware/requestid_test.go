// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tomtom215/houseoracle/internal/logging"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	t.Parallel()

	var fromCtx, fromChi, fromLogging, correlation string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
		fromChi = chimiddleware.GetReqID(r.Context())
		fromLogging = logging.RequestIDFromContext(r.Context())
		correlation = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Fatalf("response X-Request-ID %q is not a UUID: %v", responseID, err)
	}
	for name, got := range map[string]string{"context": fromCtx, "chi": fromChi, "logging": fromLogging} {
		if got != responseID {
			t.Errorf("%s request ID = %q, want %q", name, got, responseID)
		}
	}
	if correlation == "" {
		t.Error("expected a correlation ID in the logging context")
	}
}

func TestRequestID_ClientHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		reuse bool
	}{
		{"uuid", "0b6e5c3e-52a4-4c1b-9d8e-6f0a1b2c3d4e", true},
		{"token", "edge-proxy.42", true},
		{"empty", "", false},
		{"whitespace", "abc def", false},
		{"control characters", "abc\tdef", false},
		{"too long", strings.Repeat("a", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got string
			handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.in != "" {
				req.Header.Set(RequestIDHeader, tt.in)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if tt.reuse && got != tt.in {
				t.Errorf("request ID = %q, want client value %q", got, tt.in)
			}
			if !tt.reuse && (got == tt.in || got == "") {
				t.Errorf("request ID = %q, want a generated ID", got)
			}
		})
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	t.Parallel()

	if got := GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Errorf("GetRequestID() = %q, want empty", got)
	}
}
