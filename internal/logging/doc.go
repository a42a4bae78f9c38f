// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

// Package logging provides the process-wide zerolog logger for HouseOracle.
//
// JSON output is the default; console output is available for development.
// Request and correlation IDs travel in the request context and are
// attached by Ctx:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Recommendation degraded")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
//
// NewSlogLogger bridges zerolog to log/slog for the supervisor tree.
package logging
