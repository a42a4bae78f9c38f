// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Package middleware provides HTTP middleware components for the API server.

All middleware uses chi's func(http.Handler) http.Handler shape and can be
passed straight to r.Use.

Key Components:

  - RequestID: request tracking that feeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Usage Example:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)

Request IDs supplied by clients are reused when they are short printable
tokens; anything else is replaced with a generated UUID.
*/
package middleware
