// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Package services provides suture.Service wrappers for HouseOracle components.

Each wrapper implements suture's context-aware Serve method and fmt.Stringer
for log identification.

# Available Services

HTTP Server (HTTPServerService):
  - Runs ListenAndServe in a goroutine
  - Graceful Shutdown on context cancellation, bounded by a timeout
  - http.ErrServerClosed is not a failure

Recommendation Stats (RecommendStatsService):
  - Logs recommendation and fallback counts per interval
  - Warns when the fallback share crosses a configured ratio
*/
package services
