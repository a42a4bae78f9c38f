// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseoracle_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "houseoracle_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "houseoracle_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseoracle_predictions_total",
			Help: "Total number of price predictions",
		},
		[]string{"purpose", "result"}, // result: "success", "invalid", "error"
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "houseoracle_prediction_duration_seconds",
			Help:    "Price prediction latency in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"purpose"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseoracle_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"purpose", "outcome"},
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "houseoracle_recommendation_duration_seconds",
			Help:    "Recommendation latency in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"purpose"},
	)

	// Artifact Metrics
	ArtifactLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseoracle_artifact_loads_total",
			Help: "Total number of artifact load attempts",
		},
		[]string{"artifact", "result"},
	)

	ArtifactVersion = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "houseoracle_artifact_version",
			Help: "Version of each loaded artifact",
		},
		[]string{"artifact"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "houseoracle_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "houseoracle_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPrediction records one prediction attempt.
func RecordPrediction(purpose, result string, duration time.Duration) {
	PredictionsTotal.WithLabelValues(purpose, result).Inc()
	if result == "success" {
		PredictionDuration.WithLabelValues(purpose).Observe(duration.Seconds())
	}
}

// RecordRecommendation records one recommendation and its outcome.
func RecordRecommendation(purpose, outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(purpose, outcome).Inc()
	RecommendationDuration.WithLabelValues(purpose).Observe(duration.Seconds())
}

// RecordArtifactLoad records an artifact load and, on success, its version.
func RecordArtifactLoad(artifact string, version int, err error) {
	if err != nil {
		ArtifactLoadsTotal.WithLabelValues(artifact, "error").Inc()
		return
	}
	ArtifactLoadsTotal.WithLabelValues(artifact, "success").Inc()
	ArtifactVersion.WithLabelValues(artifact).Set(float64(version))
}

// RecordBreakerTransition records a circuit breaker state change.
// States use gobreaker's String() form: "closed", "half-open", "open".
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
