// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

// Package artifacts persists and loads the fitted models HouseOracle serves.
//
// # Storage Format
//
// Each artifact is a gob-encoded value, gzip-compressed and wrapped with
// metadata holding a SHA-256 checksum of the payload, written to
// {name}_v{version}.gob.gz. Loading verifies the checksum. Versions increase
// per name; version 0 means latest.
//
// # Artifacts
//
//   - {purpose}_predictor_pipeline: PredictorArtifact
//   - {purpose}_recommender: RecommenderArtifact (preprocessor, neighbor
//     index, catalog, feature names)
//   - location_tiers: LocationTiersArtifact
//
// The training job exports YAML or JSON manifests; Import converts them into
// store files. LoadRegistry reads all artifacts once at startup into an
// immutable Registry shared by every request.
package artifacts
