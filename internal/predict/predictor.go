// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package predict

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/artifacts"
	"github.com/tomtom215/houseoracle/internal/logging"
	"github.com/tomtom215/houseoracle/internal/metrics"
	"github.com/tomtom215/houseoracle/internal/property"
)

// Source provides the artifacts a Predictor needs. *artifacts.Registry implements it.
type Source interface {
	Tiers() (property.TierMap, error)
	Predictor(p property.Purpose) (*artifacts.PredictorArtifact, error)
}

// Predictor estimates property prices from the loaded regression pipelines.
// It holds no mutable state and is safe for concurrent use.
type Predictor struct {
	source Source
	logger zerolog.Logger
}

// NewPredictor creates a predictor backed by source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewPredictor(source Source, logger zerolog.Logger) (*Predictor, error) {
	if source == nil {
		return nil, errors.New("predict: nil artifact source")
	}
	return &Predictor{
		source: source,
		logger: logging.Component(logger, "predict"),
	}, nil
}

// Predict returns the estimated price for rec, whose area is in Marla.
// The model output is scaled by the purpose's price scale and rounded to the
// nearest integer, halves away from zero. rec is not modified.
func (p *Predictor) Predict(ctx context.Context, rec property.Record, purpose property.Purpose) (int64, error) {
	start := time.Now()
	price, err := p.predict(ctx, rec, purpose)

	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, property.ErrInvalidArgument):
		result = "invalid"
	default:
		result = "error"
	}
	metrics.RecordPrediction(purpose.String(), result, time.Since(start))

	if err != nil {
		logging.CtxWith(ctx, p.logger).Debug().
			Err(err).
			Str("purpose", purpose.String()).
			Msg("Prediction failed")
		return 0, err
	}
	return price, nil
}

func (p *Predictor) predict(ctx context.Context, rec property.Record, purpose property.Purpose) (int64, error) {
	if !purpose.Valid() {
		return 0, fmt.Errorf("%w: purpose must be either 'rent' or 'sale', got %s", property.ErrInvalidArgument, purpose)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	art, err := p.source.Predictor(purpose)
	if err != nil {
		return 0, err
	}
	tiers, err := p.source.Tiers()
	if err != nil {
		return 0, err
	}

	features, err := property.EngineerFeatures(rec.ToKanal(), tiers)
	if err != nil {
		return 0, err
	}

	raw, err := art.Pipeline.Predict(features)
	if err != nil {
		return 0, fmt.Errorf("%s price model: %w", purpose, err)
	}

	scaled := math.Round(raw * purpose.PriceScale())
	price, ok := toPrice(scaled)
	if !ok {
		return 0, fmt.Errorf("%s price model: scaled output %g does not fit int64", purpose, scaled)
	}
	return price, nil
}

// toPrice converts a rounded model output to int64. float64(math.MaxInt64)
// is 2^63, one past the largest int64, so the upper bound is exclusive.
func toPrice(scaled float64) (int64, bool) {
	if math.IsNaN(scaled) || scaled >= math.MaxInt64 || scaled < math.MinInt64 {
		return 0, false
	}
	return int64(scaled), true
}
