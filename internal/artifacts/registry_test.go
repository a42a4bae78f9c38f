// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package artifacts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/artifacts"
	"github.com/tomtom215/houseoracle/internal/artifacts/artifactstest"
	"github.com/tomtom215/houseoracle/internal/property"
)

func TestLoadRegistry_Complete(t *testing.T) {
	t.Parallel()

	store := artifactstest.WriteStore(t, t.TempDir())
	reg, err := artifacts.LoadRegistry(context.Background(), store, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if !reg.Complete() {
		t.Fatalf("registry incomplete, failures: %v", reg.Failures())
	}
	if err := reg.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}

	tiers, err := reg.Tiers()
	if err != nil {
		t.Fatalf("Tiers: %v", err)
	}
	if tiers.Tier("Bahria Town") != 2 {
		t.Errorf("tier = %d, want 2", tiers.Tier("Bahria Town"))
	}

	for _, p := range property.Purposes() {
		if _, err := reg.Predictor(p); err != nil {
			t.Errorf("Predictor(%s): %v", p, err)
		}
		rec, err := reg.Recommender(p)
		if err != nil {
			t.Fatalf("Recommender(%s): %v", p, err)
		}
		if rec.Catalog.Len() != len(artifactstest.CatalogRows()) {
			t.Errorf("catalog rows = %d, want %d", rec.Catalog.Len(), len(artifactstest.CatalogRows()))
		}
	}
}

func TestLoadRegistry_Partial(t *testing.T) {
	t.Parallel()

	store, err := artifacts.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if _, err := store.Save(ctx, artifacts.PredictorName(property.PurposeRent), 0, artifactstest.RentPredictor(), artifacts.Metadata{}); err != nil {
		t.Fatal(err)
	}
	// An invalid artifact is reported like a missing one.
	bad := &artifacts.LocationTiersArtifact{Tiers: property.TierMap{"Nowhere": 0}}
	if _, err := store.Save(ctx, artifacts.LocationTiersName, 0, bad, artifacts.Metadata{}); err != nil {
		t.Fatal(err)
	}

	reg, err := artifacts.LoadRegistry(ctx, store, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if reg.Complete() {
		t.Fatal("registry should be incomplete")
	}
	if !errors.Is(reg.Err(), property.ErrArtifactLoad) {
		t.Errorf("Err() = %v, want ErrArtifactLoad", reg.Err())
	}
	if _, err := reg.Predictor(property.PurposeRent); err != nil {
		t.Errorf("rent predictor should load: %v", err)
	}
	if _, err := reg.Predictor(property.PurposeSale); !errors.Is(err, property.ErrArtifactLoad) {
		t.Errorf("sale predictor err = %v, want ErrArtifactLoad", err)
	}
	if _, err := reg.Tiers(); !errors.Is(err, property.ErrArtifactLoad) {
		t.Errorf("Tiers err = %v, want ErrArtifactLoad", err)
	}

	failures := reg.Failures()
	if len(failures) != 4 {
		t.Errorf("failures = %v, want 4 entries", failures)
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	reg := artifactstest.Registry()
	if !reg.Complete() {
		t.Error("fixture registry should be complete")
	}

	empty := artifacts.NewRegistry(nil)
	if empty.Complete() {
		t.Error("empty registry should be incomplete")
	}
	if _, err := empty.Recommender(property.PurposeSale); !errors.Is(err, property.ErrArtifactLoad) {
		t.Errorf("err = %v, want ErrArtifactLoad", err)
	}
}

func TestRecommenderArtifact_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*artifacts.RecommenderArtifact)
		wantErr bool
	}{
		{name: "fixture", mutate: func(*artifacts.RecommenderArtifact) {}},
		{name: "no features", mutate: func(a *artifacts.RecommenderArtifact) { a.FeatureNames = nil }, wantErr: true},
		{name: "unknown feature", mutate: func(a *artifacts.RecommenderArtifact) {
			a.FeatureNames = append(a.FeatureNames, "floors")
		}, wantErr: true},
		{name: "point count", mutate: func(a *artifacts.RecommenderArtifact) {
			a.Index.Points = a.Index.Points[:3]
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			art := artifactstest.Recommender(6)
			tt.mutate(art)
			if err := art.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

const tiersYAML = `
kind: location_tiers
tiers:
  DHA Defence: 1
  Bahria Town: 2
`

const predictorYAML = `
kind: predictor
purpose: RENT
pipeline:
  target_transform: log1p
  preprocessor:
    steps:
      - kind: passthrough
        columns: [area, bedrooms, baths, location_tier, area_room_ratio]
  regressor:
    kind: linear
    coefficients: [0.2, 0.05, 0.05, -0.02, 0.1]
    intercept: 0.1
`

func TestParseManifest_YAML(t *testing.T) {
	t.Parallel()

	store, err := artifacts.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	tests := []struct {
		name     string
		data     string
		file     string
		wantName string
	}{
		{"tiers", tiersYAML, "tiers.yaml", artifacts.LocationTiersName},
		{"predictor", predictorYAML, "rent.yml", artifacts.PredictorName(property.PurposeRent)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := artifacts.ParseManifest([]byte(tt.data), "", tt.file)
			if err != nil {
				t.Fatalf("ParseManifest: %v", err)
			}
			meta, err := artifacts.Import(ctx, store, m, tt.file)
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			if meta.Name != tt.wantName || meta.Source != tt.file {
				t.Errorf("meta = %+v, want name %s", meta, tt.wantName)
			}
		})
	}

	var tiers artifacts.LocationTiersArtifact
	if _, err := store.Load(ctx, artifacts.LocationTiersName, 0, &tiers); err != nil {
		t.Fatalf("Load tiers: %v", err)
	}
	if tiers.Tiers.Tier("Bahria Town") != 2 {
		t.Errorf("imported tier = %d, want 2", tiers.Tiers.Tier("Bahria Town"))
	}
}

func TestParseManifest_JSONRecommender(t *testing.T) {
	t.Parallel()

	fixture := artifactstest.Recommender(5)
	m := artifacts.Manifest{
		Kind:         artifacts.KindRecommender,
		Purpose:      "sale",
		Preprocessor: &fixture.Preprocessor,
		Index:        &fixture.Index,
		FeatureNames: fixture.FeatureNames,
		Catalog: &artifacts.CatalogManifest{
			Columns: artifactstest.CatalogColumns,
			Rows:    artifactstest.CatalogRows(),
		},
	}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	parsed, err := artifacts.ParseManifest(data, "", "sale_recommender.json")
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	built, err := parsed.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	rec, ok := built.(*artifacts.RecommenderArtifact)
	if !ok {
		t.Fatalf("Build returned %T", built)
	}
	if rec.Index.K != 5 || rec.Catalog.Len() != fixture.Catalog.Len() {
		t.Errorf("built recommender K=%d rows=%d", rec.Index.K, rec.Catalog.Len())
	}
}

func TestParseManifest_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"bad yaml", "kind: [", "yaml"},
		{"bad json", "{", "json"},
		{"unknown format", "{}", "toml"},
	}
	for _, tt := range tests {
		if _, err := artifacts.ParseManifest([]byte(tt.data), tt.format, ""); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	invalid := []artifacts.Manifest{
		{Kind: "model", Purpose: "rent"},
		{Kind: artifacts.KindPredictor, Purpose: "lease"},
		{Kind: artifacts.KindPredictor, Purpose: "rent"},
		{Kind: artifacts.KindRecommender, Purpose: "sale"},
	}
	for _, m := range invalid {
		if _, err := artifacts.Import(context.Background(), nil, &m, "test"); err == nil {
			t.Errorf("Import(%+v) expected error", m)
		}
	}
}
