// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package recommend

import (
	"github.com/tomtom215/houseoracle/internal/artifacts"
	"github.com/tomtom215/houseoracle/internal/property"
)

// Outcome describes which path produced a recommendation.
type Outcome int

const (
	// OutcomeClustered means picks came from k-means diversification; area is in Marla.
	OutcomeClustered Outcome = iota
	// OutcomeUnclustered means fewer neighbors than clusters were found and
	// they are returned as stored in the catalog.
	OutcomeUnclustered
	// OutcomeFallback means the neighbor pipeline failed and a random catalog
	// sample was served as stored.
	OutcomeFallback
)

// String returns the metric label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeClustered:
		return "clustered"
	case OutcomeUnclustered:
		return "unclustered"
	case OutcomeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Result is the output of a recommendation request.
type Result struct {
	// Records are the recommended catalog rows, price placed after property_type.
	Records []property.Record

	// Outcome reports the path taken.
	Outcome Outcome

	// Cause is the pipeline error that triggered the fallback, wrapped with
	// property.ErrRecommendationDegraded. Nil otherwise.
	Cause error
}

// Source provides recommender artifacts by purpose. *artifacts.Registry implements it.
type Source interface {
	Recommender(p property.Purpose) (*artifacts.RecommenderArtifact, error)
}
