// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

// Package property holds the domain vocabulary shared by the predictor and
// the recommender: the ordered property Record, the Purpose enum, Marla and
// Kanal unit conversion, feature engineering and the sentinel errors.
//
// Area is in Marla at the API boundary and in Kanal for model input.
// Every conversion and feature step returns a copy; callers' records are
// never mutated.
package property
