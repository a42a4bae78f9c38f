// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Package config provides centralized configuration management for HouseOracle.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, or the first of DefaultConfigPaths
 3. Environment variables, after a .env file (or DOTENV_PATH) has been loaded

Only environment variables listed in the mapping table are read.

# Environment Variables

Server:
  - PORT (or HTTP_PORT): Listen port (default: 5000)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_TIMEOUT: Per-request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown bound (default: 15s)

Artifacts:
  - ARTIFACTS_DIR: Artifact store directory (default: artifacts/models)
  - ARTIFACTS_VERSION: Pin all artifacts to a version (default: 0 = latest)
  - ARTIFACTS_REQUIRE_ALL: Refuse to start on any load failure (default: false)

Recommendation:
  - RECOMMEND_NUM_CLUSTERS, RECOMMEND_SEED, RECOMMEND_MAX_ITER,
    RECOMMEND_N_INIT, RECOMMEND_TOLERANCE, RECOMMEND_FALLBACK_SIZE
  - RECOMMEND_BREAKER_ENABLED, RECOMMEND_BREAKER_THRESHOLD,
    RECOMMEND_BREAKER_TIMEOUT, RECOMMEND_BREAKER_INTERVAL

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQS / RATE_LIMIT_WINDOW: /predict limit per client IP (default: 100/1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller location (default: false)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	addr := cfg.Server.Addr()
*/
package config
