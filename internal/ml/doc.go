// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

// Package ml implements inference for fitted models: a column-wise
// Preprocessor, linear and gradient-boosted Regressors with an optional
// log1p target transform, a brute-force NearestNeighbors index and seeded
// k-means clustering.
//
// Nothing here trains a model; fitted parameters arrive through artifacts.
// All types are plain data with exported fields so they encode with gob,
// JSON and YAML, and are safe for concurrent read-only use.
package ml
