// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package artifacts

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/logging"
	"github.com/tomtom215/houseoracle/internal/metrics"
	"github.com/tomtom215/houseoracle/internal/property"
)

// Bundle holds the artifacts for one purpose. Either field may be nil when
// the artifact failed to load.
type Bundle struct {
	Purpose     property.Purpose
	Predictor   *PredictorArtifact
	Recommender *RecommenderArtifact
}

// Registry is the immutable set of artifacts loaded at startup. It is safe
// for concurrent use because nothing mutates it after construction.
type Registry struct {
	tiers    property.TierMap
	bundles  map[property.Purpose]Bundle
	failures map[string]error
}

// NewRegistry builds a registry from in-memory artifacts.
func NewRegistry(tiers property.TierMap, bundles ...Bundle) *Registry {
	r := &Registry{
		tiers:    tiers,
		bundles:  make(map[property.Purpose]Bundle, len(bundles)),
		failures: make(map[string]error),
	}
	for _, b := range bundles {
		r.bundles[b.Purpose] = b
	}
	return r
}

// LoadRegistry loads location tiers plus every purpose's predictor and
// recommender from store. Missing or invalid artifacts do not abort loading;
// they are recorded and reported by Failures and by the accessor for that
// artifact. version 0 selects the latest version of each artifact.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func LoadRegistry(ctx context.Context, store *Store, version int, logger zerolog.Logger) (*Registry, error) {
	logger = logging.Component(logger, "artifacts")
	r := NewRegistry(nil)

	var tiers LocationTiersArtifact
	if err := r.load(ctx, store, LocationTiersName, version, &tiers, logger); err == nil {
		r.tiers = tiers.Tiers
		if r.tiers == nil {
			r.tiers = property.TierMap{}
		}
	} else if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	for _, p := range property.Purposes() {
		b := Bundle{Purpose: p}

		var pred PredictorArtifact
		if err := r.load(ctx, store, PredictorName(p), version, &pred, logger); err == nil {
			b.Predictor = &pred
		}
		var rec RecommenderArtifact
		if err := r.load(ctx, store, RecommenderName(p), version, &rec, logger); err == nil {
			b.Recommender = &rec
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.bundles[p] = b
	}

	logger.Info().
		Int("loaded", r.loadedCount()).
		Int("failed", len(r.failures)).
		Str("dir", store.Dir()).
		Msg("Artifact registry loaded")
	return r, nil
}

// Artifact is any stored model value that can check its own consistency.
type Artifact interface {
	Validate() error
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (r *Registry) load(ctx context.Context, store *Store, name string, version int, target Artifact, logger zerolog.Logger) error {
	meta, err := store.Load(ctx, name, version, target)
	if err == nil {
		err = target.Validate()
	}
	if err != nil {
		r.failures[name] = err
		metrics.RecordArtifactLoad(name, 0, err)
		logger.Error().Err(err).Str("artifact", name).Msg("Failed to load artifact")
		return err
	}
	metrics.RecordArtifactLoad(name, meta.Version, nil)
	logger.Info().
		Str("artifact", name).
		Int("version", meta.Version).
		Str("checksum", meta.Checksum).
		Msg("Loaded artifact")
	return nil
}

func (r *Registry) loadedCount() int {
	n := 0
	for _, b := range r.bundles {
		if b.Predictor != nil {
			n++
		}
		if b.Recommender != nil {
			n++
		}
	}
	if r.tiers != nil {
		n++
	}
	return n
}

// Tiers returns the location tier map or an ErrArtifactLoad error.
func (r *Registry) Tiers() (property.TierMap, error) {
	if r.tiers == nil {
		return nil, r.missing(LocationTiersName)
	}
	return r.tiers, nil
}

// Predictor returns the predictor for p or an ErrArtifactLoad error.
func (r *Registry) Predictor(p property.Purpose) (*PredictorArtifact, error) {
	b, ok := r.bundles[p]
	if !ok || b.Predictor == nil {
		return nil, r.missing(PredictorName(p))
	}
	return b.Predictor, nil
}

// Recommender returns the recommender for p or an ErrArtifactLoad error.
func (r *Registry) Recommender(p property.Purpose) (*RecommenderArtifact, error) {
	b, ok := r.bundles[p]
	if !ok || b.Recommender == nil {
		return nil, r.missing(RecommenderName(p))
	}
	return b.Recommender, nil
}

func (r *Registry) missing(name string) error {
	if cause, ok := r.failures[name]; ok {
		return fmt.Errorf("%w: %s: %w", property.ErrArtifactLoad, name, cause)
	}
	return fmt.Errorf("%w: %s not loaded", property.ErrArtifactLoad, name)
}

// Failures returns the artifacts that failed to load, sorted by name.
func (r *Registry) Failures() []string {
	names := make([]string, 0, len(r.failures))
	for name := range r.failures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Complete reports whether every artifact for every purpose is present.
func (r *Registry) Complete() bool {
	if r.tiers == nil {
		return false
	}
	for _, p := range property.Purposes() {
		b, ok := r.bundles[p]
		if !ok || b.Predictor == nil || b.Recommender == nil {
			return false
		}
	}
	return true
}

// Err summarizes load failures, or returns nil when the registry is complete.
func (r *Registry) Err() error {
	if r.Complete() {
		return nil
	}
	errs := make([]error, 0, len(r.failures))
	for _, name := range r.Failures() {
		errs = append(errs, fmt.Errorf("%s: %w", name, r.failures[name]))
	}
	if len(errs) == 0 {
		errs = append(errs, errors.New("registry incomplete"))
	}
	return fmt.Errorf("%w: %w", property.ErrArtifactLoad, errors.Join(errs...))
}
