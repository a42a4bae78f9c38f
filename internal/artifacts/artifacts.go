// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package artifacts

import (
	"fmt"

	"github.com/tomtom215/houseoracle/internal/ml"
	"github.com/tomtom215/houseoracle/internal/property"
)

// LocationTiersName is the shared tier map artifact.
const LocationTiersName = "location_tiers"

// PredictorName returns the predictor artifact name for a purpose.
func PredictorName(p property.Purpose) string {
	return p.String() + "_predictor_pipeline"
}

// RecommenderName returns the recommender artifact name for a purpose.
func RecommenderName(p property.Purpose) string {
	return p.String() + "_recommender"
}

// PredictorArtifact is the fitted price regression pipeline for one purpose.
// It consumes engineered features (area in log1p Kanal, location_tier,
// area_room_ratio plus raw attributes).
type PredictorArtifact struct {
	Pipeline ml.Pipeline
}

// Validate checks the pipeline.
func (a *PredictorArtifact) Validate() error {
	if err := a.Pipeline.Validate(); err != nil {
		return fmt.Errorf("predictor pipeline: %w", err)
	}
	return nil
}

// RecommenderArtifact bundles the neighbor search pipeline with the catalog
// it was fitted on. Index.Points[i] is the transformed Catalog row i.
type RecommenderArtifact struct {
	Preprocessor ml.Preprocessor
	Index        ml.NearestNeighbors
	Catalog      Catalog
	FeatureNames []string
}

// Validate checks that the preprocessor, index, catalog and feature names agree.
func (a *RecommenderArtifact) Validate() error {
	if err := a.Preprocessor.Validate(); err != nil {
		return fmt.Errorf("recommender preprocessor: %w", err)
	}
	if len(a.FeatureNames) == 0 {
		return fmt.Errorf("recommender has no feature names")
	}
	if err := a.Catalog.Validate(); err != nil {
		return fmt.Errorf("recommender catalog: %w", err)
	}
	for _, name := range a.FeatureNames {
		if _, ok := a.Catalog.Column(name); !ok {
			return fmt.Errorf("feature %q is not a catalog column", name)
		}
	}
	if err := a.Index.Validate(a.Preprocessor.OutputWidth()); err != nil {
		return fmt.Errorf("recommender index: %w", err)
	}
	if len(a.Index.Points) != a.Catalog.Len() {
		return fmt.Errorf("index has %d points, catalog has %d rows", len(a.Index.Points), a.Catalog.Len())
	}
	return nil
}

// LocationTiersArtifact is the location to tier mapping shared by both purposes.
type LocationTiersArtifact struct {
	Tiers property.TierMap
}

// Validate checks that tiers are positive.
func (a *LocationTiersArtifact) Validate() error {
	for loc, tier := range a.Tiers {
		if tier < 1 {
			return fmt.Errorf("location %q has tier %d, want >= 1", loc, tier)
		}
	}
	return nil
}
