// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Command server runs the HouseOracle HTTP API.

Startup order:

 1. Configuration: defaults, optional YAML file, .env and environment (koanf v2)
 2. Logging: zerolog, JSON by default
 3. Artifacts: location tiers plus rent and sale predictor and recommender
    artifacts are loaded once from the artifact store
 4. Predictor and recommendation engine over the loaded registry
 5. Chi router with CORS, rate limiting and Prometheus instrumentation
 6. Supervisor tree running the HTTP server and the stats reporter

# Configuration

Common environment variables:

	PORT                   listen port (default 5000)
	ARTIFACTS_DIR          artifact store directory (default artifacts/models)
	ARTIFACTS_VERSION      pin all artifacts to one version (default 0, latest)
	ARTIFACTS_REQUIRE_ALL  refuse to start with missing artifacts
	CORS_ORIGINS           comma-separated allowed origins (default *)
	LOG_LEVEL, LOG_FORMAT  zerolog level and json|console output

A YAML file is read from CONFIG_PATH or /etc/houseoracle/config.yaml.

# Signal Handling

SIGINT and SIGTERM stop accepting connections and drain in-flight requests
within server.shutdown_timeout.

# Example

	houseoracle-artifacts import -dir artifacts/models manifests/*.yaml
	PORT=8080 LOG_FORMAT=console ./server
*/
package main
