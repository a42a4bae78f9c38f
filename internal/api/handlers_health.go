// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK whenever the process can serve HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &HealthResponse{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 OK only when both purposes' predictor and recommender
// artifacts and the location tiers are loaded, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	resp := &HealthResponse{
		Status:        "ready",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	status := http.StatusOK

	if h.readiness != nil && !h.readiness.Complete() {
		resp.Status = "not_ready"
		resp.Missing = h.readiness.Failures()
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, resp)
}
