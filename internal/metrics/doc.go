// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Package metrics provides Prometheus instrumentation for HouseOracle.

Metrics are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:5000/metrics

# Available Metrics

API:
  - houseoracle_api_requests_total{method,endpoint,status}
  - houseoracle_api_request_duration_seconds{method,endpoint}
  - houseoracle_api_active_requests

Prediction and recommendation:
  - houseoracle_predictions_total{purpose,result}
  - houseoracle_prediction_duration_seconds{purpose}
  - houseoracle_recommendations_total{purpose,outcome}: outcome is
    clustered, unclustered (fewer than three neighbors) or fallback
  - houseoracle_recommendation_duration_seconds{purpose}

Artifacts and resilience:
  - houseoracle_artifact_loads_total{artifact,result}
  - houseoracle_artifact_version{artifact}
  - houseoracle_circuit_breaker_state{name}
  - houseoracle_circuit_breaker_state_transitions_total{name,from_state,to_state}
*/
package metrics
