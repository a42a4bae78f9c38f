// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/houseoracle/internal/logging"
	"github.com/tomtom215/houseoracle/internal/property"
)

// PredictResponse is the body of a successful POST /predict.
type PredictResponse struct {
	PredictedPrice  int64             `json:"predicted_price"`
	Recommendations []property.Record `json:"recommendations"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status        string   `json:"status"`
	UptimeSeconds float64  `json:"uptime_seconds"`
	Artifacts     int      `json:"artifacts_loaded,omitempty"`
	Missing       []string `json:"missing_artifacts,omitempty"`
}

// Error messages returned to clients.
const (
	msgMissingFields    = "Missing required fields"
	msgInvalidPurpose   = `Invalid purpose. Use "rent" or "sale"`
	msgInvalidInput     = "Invalid input"
	msgPredictionFailed = "Prediction failed"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message, details string) {
	respondJSON(w, status, &ErrorResponse{Error: message, Details: details})
}

func respondText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		logging.Error().Err(err).Msg("Failed to write text response")
	}
}
