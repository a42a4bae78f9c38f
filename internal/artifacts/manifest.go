// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package artifacts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/houseoracle/internal/ml"
	"github.com/tomtom215/houseoracle/internal/property"
)

// Manifest kinds.
const (
	KindPredictor     = "predictor"
	KindRecommender   = "recommender"
	KindLocationTiers = "location_tiers"
)

// Manifest is the human-editable export of one artifact, written by the
// training job as YAML or JSON and imported into the Store.
type Manifest struct {
	Kind    string `json:"kind" yaml:"kind"`
	Purpose string `json:"purpose,omitempty" yaml:"purpose,omitempty"`

	Pipeline *ml.Pipeline `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`

	Preprocessor *ml.Preprocessor     `json:"preprocessor,omitempty" yaml:"preprocessor,omitempty"`
	Index        *ml.NearestNeighbors `json:"index,omitempty" yaml:"index,omitempty"`
	FeatureNames []string             `json:"feature_names,omitempty" yaml:"feature_names,omitempty"`
	Catalog      *CatalogManifest     `json:"catalog,omitempty" yaml:"catalog,omitempty"`

	Tiers map[string]int `json:"tiers,omitempty" yaml:"tiers,omitempty"`
}

// CatalogManifest carries catalog rows positionally so column order survives
// both encodings.
type CatalogManifest struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// ParseManifest decodes a manifest. format is "yaml" or "json"; an empty
// format is inferred from the file extension of name.
func ParseManifest(data []byte, format, name string) (*Manifest, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json":
			format = "json"
		default:
			format = "yaml"
		}
	}

	var m Manifest
	switch format {
	case "json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse JSON manifest: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse YAML manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return &m, nil
}

// ArtifactName returns the store name the manifest imports under.
func (m *Manifest) ArtifactName() (string, error) {
	if m.Kind == KindLocationTiers {
		return LocationTiersName, nil
	}
	p, err := property.ParsePurpose(m.Purpose)
	if err != nil {
		return "", err
	}
	switch m.Kind {
	case KindPredictor:
		return PredictorName(p), nil
	case KindRecommender:
		return RecommenderName(p), nil
	default:
		return "", fmt.Errorf("unknown manifest kind %q", m.Kind)
	}
}

// Build converts the manifest into its validated artifact value.
func (m *Manifest) Build() (Artifact, error) {
	var art Artifact
	switch m.Kind {
	case KindPredictor:
		if m.Pipeline == nil {
			return nil, fmt.Errorf("predictor manifest has no pipeline")
		}
		art = &PredictorArtifact{Pipeline: *m.Pipeline}
	case KindRecommender:
		if m.Preprocessor == nil || m.Index == nil || m.Catalog == nil {
			return nil, fmt.Errorf("recommender manifest needs preprocessor, index and catalog")
		}
		catalog, err := NewCatalog(m.Catalog.Columns, m.Catalog.Rows)
		if err != nil {
			return nil, err
		}
		art = &RecommenderArtifact{
			Preprocessor: *m.Preprocessor,
			Index:        *m.Index,
			Catalog:      *catalog,
			FeatureNames: m.FeatureNames,
		}
	case KindLocationTiers:
		art = &LocationTiersArtifact{Tiers: property.TierMap(m.Tiers)}
	default:
		return nil, fmt.Errorf("unknown manifest kind %q", m.Kind)
	}
	if err := art.Validate(); err != nil {
		return nil, err
	}
	return art, nil
}

// Import validates the manifest and saves it as the next version in store.
func Import(ctx context.Context, store *Store, m *Manifest, source string) (*Metadata, error) {
	name, err := m.ArtifactName()
	if err != nil {
		return nil, err
	}
	art, err := m.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return store.Save(ctx, name, 0, art, Metadata{Source: source})
}
