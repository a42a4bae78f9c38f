// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

// Package artifactstest builds small, fully fitted artifacts for tests.
package artifactstest

import (
	"context"
	"testing"

	"github.com/tomtom215/houseoracle/internal/artifacts"
	"github.com/tomtom215/houseoracle/internal/ml"
	"github.com/tomtom215/houseoracle/internal/property"
)

// CatalogColumns is the column order of the fixture catalog.
var CatalogColumns = []string{"location", "property_type", "price", "area", "bedrooms", "baths"}

// FeatureNames are the recommender features.
var FeatureNames = []string{"property_type", "price", "area", "bedrooms", "baths", "location"}

// Tiers returns the fixture location tier map.
func Tiers() property.TierMap {
	return property.TierMap{
		"DHA Defence": 1,
		"Gulberg":     1,
		"Bahria Town": 2,
		"G-13":        3,
	}
}

func predictorPreprocessor() ml.Preprocessor {
	return ml.Preprocessor{Steps: []ml.ColumnStep{
		{Kind: ml.StepPassthrough, Columns: []string{"area", "bedrooms", "baths", "location_tier", "area_room_ratio"}},
		{Kind: ml.StepOrdinal, Columns: []string{"property_type"}, Categories: [][]string{{"flat", "house", "penthouse"}}, UnknownValue: -1},
	}}
}

// RentPredictor is a linear model on a log1p target. Output is positive for
// any non-negative area, room counts and tiers up to 4.
func RentPredictor() *artifacts.PredictorArtifact {
	return &artifacts.PredictorArtifact{Pipeline: ml.Pipeline{
		Preprocessor:    predictorPreprocessor(),
		Regressor:       ml.Regressor{Kind: ml.RegressorLinear, Coefficients: []float64{0.2, 0.05, 0.05, -0.02, 0.1, 0.01}, Intercept: 0.1},
		TargetTransform: ml.TargetLog1p,
	}}
}

// SalePredictor is a two-tree boosted model with positive leaves.
func SalePredictor() *artifacts.PredictorArtifact {
	split := func(feature int, threshold, left, right float64) ml.Tree {
		return ml.Tree{Nodes: []ml.TreeNode{
			{Feature: feature, Threshold: threshold, Left: 1, Right: 2, DefaultLeft: true},
			{Leaf: true, Value: left},
			{Leaf: true, Value: right},
		}}
	}
	return &artifacts.PredictorArtifact{Pipeline: ml.Pipeline{
		Preprocessor: predictorPreprocessor(),
		Regressor: ml.Regressor{
			Kind:      ml.RegressorGradientBoosting,
			BaseScore: 0.5,
			Trees:     []ml.Tree{split(0, 0.5, 0.1, 0.8), split(3, 2, 0.6, 0.2)},
		},
	}}
}

// CatalogRows returns the fixture catalog rows, area in Kanal.
func CatalogRows() [][]any {
	return [][]any{
		{"DHA Defence", "house", 250000.0, 1.0, 5.0, 5.0},
		{"DHA Defence", "house", 180000.0, 0.5, 4.0, 4.0},
		{"DHA Defence", "flat", 90000.0, 0.25, 2.0, 2.0},
		{"Gulberg", "house", 220000.0, 1.0, 5.0, 4.0},
		{"Gulberg", "flat", 70000.0, 0.2, 2.0, 1.0},
		{"Bahria Town", "house", 120000.0, 0.5, 3.0, 3.0},
		{"Bahria Town", "house", 95000.0, 0.4, 3.0, 2.0},
		{"Bahria Town", "flat", 45000.0, 0.15, 1.0, 1.0},
		{"G-13", "house", 85000.0, 0.4, 4.0, 3.0},
		{"G-13", "flat", 40000.0, 0.1, 1.0, 1.0},
		{"G-13", "penthouse", 150000.0, 0.3, 3.0, 3.0},
		{"Gulberg", "penthouse", 300000.0, 0.6, 4.0, 4.0},
	}
}

// RecommenderPreprocessor scales numeric features, one-hot encodes
// property_type and target-encodes location.
func RecommenderPreprocessor() ml.Preprocessor {
	return ml.Preprocessor{Steps: []ml.ColumnStep{
		{
			Kind:    ml.StepStandardScale,
			Columns: []string{"price", "area", "bedrooms", "baths"},
			Mean:    []float64{137000, 0.45, 3.1, 2.8},
			Scale:   []float64{80000, 0.3, 1.3, 1.3},
		},
		{Kind: ml.StepOneHot, Columns: []string{"property_type"}, Categories: [][]string{{"flat", "house", "penthouse"}}},
		{
			Kind:    ml.StepTargetEncode,
			Columns: []string{"location"},
			Mapping: []map[string]float64{{"DHA Defence": 1.2, "Gulberg": 1.1, "Bahria Town": 0.4, "G-13": -0.3}},
			Default: []float64{0},
		},
	}}
}

// Recommender returns a recommender whose index returns k neighbors.
func Recommender(k int) *artifacts.RecommenderArtifact {
	catalog, err := artifacts.NewCatalog(CatalogColumns, CatalogRows())
	if err != nil {
		panic(err)
	}
	pre := RecommenderPreprocessor()

	points := make([][]float64, catalog.Len())
	for i := range points {
		row, err := catalog.Row(i)
		if err != nil {
			panic(err)
		}
		if points[i], err = pre.Transform(row); err != nil {
			panic(err)
		}
	}

	return &artifacts.RecommenderArtifact{
		Preprocessor: pre,
		Index:        ml.NearestNeighbors{K: k, Points: points},
		Catalog:      *catalog,
		FeatureNames: append([]string(nil), FeatureNames...),
	}
}

// Registry returns a complete registry with k=6 recommenders for both purposes.
func Registry() *artifacts.Registry {
	return RegistryWithK(6)
}

// RegistryWithK returns a complete registry with the given neighbor count.
func RegistryWithK(k int) *artifacts.Registry {
	return artifacts.NewRegistry(Tiers(),
		artifacts.Bundle{Purpose: property.PurposeRent, Predictor: RentPredictor(), Recommender: Recommender(k)},
		artifacts.Bundle{Purpose: property.PurposeSale, Predictor: SalePredictor(), Recommender: Recommender(k)},
	)
}

// WriteStore saves every fixture artifact to a new store in dir.
func WriteStore(tb testing.TB, dir string) *artifacts.Store {
	tb.Helper()

	store, err := artifacts.NewStore(dir)
	if err != nil {
		tb.Fatalf("NewStore: %v", err)
	}

	ctx := context.Background()
	save := func(name string, art artifacts.Artifact) {
		if _, err := store.Save(ctx, name, 0, art, artifacts.Metadata{Source: "artifactstest"}); err != nil {
			tb.Fatalf("Save %s: %v", name, err)
		}
	}
	save(artifacts.LocationTiersName, &artifacts.LocationTiersArtifact{Tiers: Tiers()})
	save(artifacts.PredictorName(property.PurposeRent), RentPredictor())
	save(artifacts.PredictorName(property.PurposeSale), SalePredictor())
	save(artifacts.RecommenderName(property.PurposeRent), Recommender(6))
	save(artifacts.RecommenderName(property.PurposeSale), Recommender(6))
	return store
}

// Query returns a valid request record (area in Marla, no purpose).
func Query() property.Record {
	var r property.Record
	r.Set("location", "DHA Defence")
	r.Set("property_type", "house")
	r.Set("area", 10.0)
	r.Set("bedrooms", 4.0)
	r.Set("baths", 4.0)
	return r
}
