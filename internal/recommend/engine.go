// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/houseoracle/internal/artifacts"
	"github.com/tomtom215/houseoracle/internal/logging"
	"github.com/tomtom215/houseoracle/internal/metrics"
	"github.com/tomtom215/houseoracle/internal/ml"
	"github.com/tomtom215/houseoracle/internal/property"
)

// diversified is the output of the neighbor pipeline.
type diversified struct {
	records []property.Record
	outcome Outcome
}

// Engine produces diversified property recommendations. It is safe for
// concurrent use.
type Engine struct {
	config *Config
	source Source
	logger zerolog.Logger

	breakers map[property.Purpose]*gobreaker.CircuitBreaker[diversified]

	// Fallback sampling is unseeded. Clustering uses Config.Seed.
	rng   *rand.Rand
	rngMu sync.Mutex

	requestCount  atomic.Int64
	fallbackCount atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests  int64 `json:"requests"`
	Fallbacks int64 `json:"fallbacks"`
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, source Source, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if source == nil {
		return nil, errors.New("recommend: nil artifact source")
	}

	e := &Engine{
		config:   cfg,
		source:   source,
		logger:   logging.Component(logger, "recommend"),
		breakers: make(map[property.Purpose]*gobreaker.CircuitBreaker[diversified]),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // sampling is not security sensitive
	}
	if cfg.Breaker.Enabled {
		for _, p := range property.Purposes() {
			e.breakers[p] = e.newBreaker(p)
		}
	}
	return e, nil
}

func (e *Engine) newBreaker(p property.Purpose) *gobreaker.CircuitBreaker[diversified] {
	bc := e.config.Breaker
	return gobreaker.NewCircuitBreaker[diversified](gobreaker.Settings{
		Name:        "recommend-" + p.String(),
		MaxRequests: bc.HalfOpenRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			e.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})
}

// Recommend returns up to Clusters diversified catalog rows similar to input.
// input carries the predicted price and the query attributes as received.
//
// An unknown purpose yields property.ErrInvalidArgument and a missing
// artifact property.ErrArtifactLoad. Any failure inside the neighbor
// pipeline is absorbed: the result holds FallbackSize random catalog rows and
// Outcome is OutcomeFallback.
func (e *Engine) Recommend(ctx context.Context, input property.Record, purpose property.Purpose) (*Result, error) {
	if !purpose.Valid() {
		return nil, fmt.Errorf("%w: purpose must be either 'rent' or 'sale', got %s", property.ErrInvalidArgument, purpose)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	art, err := e.source.Recommender(purpose)
	if err != nil {
		return nil, err
	}

	e.requestCount.Add(1)
	start := time.Now()

	out, err := e.run(purpose, art, input)
	if err != nil {
		cause := fmt.Errorf("%w: %w", property.ErrRecommendationDegraded, err)
		logging.CtxWith(ctx, e.logger).Warn().
			Err(cause).
			Str("purpose", purpose.String()).
			Msg("Recommendation failed, serving random catalog sample")

		records, ferr := e.sample(art)
		if ferr != nil {
			return nil, fmt.Errorf("recommendation fallback: %w", ferr)
		}
		e.fallbackCount.Add(1)
		metrics.RecordRecommendation(purpose.String(), OutcomeFallback.String(), time.Since(start))
		return &Result{Records: records, Outcome: OutcomeFallback, Cause: cause}, nil
	}

	metrics.RecordRecommendation(purpose.String(), out.outcome.String(), time.Since(start))
	logging.CtxWith(ctx, e.logger).Debug().
		Str("purpose", purpose.String()).
		Str("outcome", out.outcome.String()).
		Int("count", len(out.records)).
		Msg("Recommendation complete")
	return &Result{Records: out.records, Outcome: out.outcome}, nil
}

// run executes the neighbor pipeline. Input preprocessing and the neighbor
// query depend on the request and fail only that request. Catalog lookup,
// neighbor transform and clustering depend on the artifact alone and run
// through the purpose's breaker when enabled.
func (e *Engine) run(purpose property.Purpose, art *artifacts.RecommenderArtifact, input property.Record) (out diversified, err error) {
	// A panic in a malformed artifact degrades to the fallback like any other failure.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("neighbor pipeline panic: %v", r)
		}
	}()

	neighbors, err := e.neighbors(art, input)
	if err != nil {
		return diversified{}, err
	}

	cb, ok := e.breakers[purpose]
	if !ok {
		return e.diversify(art, neighbors)
	}
	return cb.Execute(func() (diversified, error) {
		return e.diversify(art, neighbors)
	})
}

// neighbors transforms input and returns the K nearest catalog indices.
func (e *Engine) neighbors(art *artifacts.RecommenderArtifact, input property.Record) ([]int, error) {
	x, err := art.Preprocessor.Transform(input)
	if err != nil {
		return nil, fmt.Errorf("preprocess input: %w", err)
	}
	found, err := art.Index.Query(x)
	if err != nil {
		return nil, fmt.Errorf("neighbor search: %w", err)
	}

	idx := make([]int, len(found))
	for i, n := range found {
		idx[i] = n.Index
	}
	return idx, nil
}

// diversify clusters the neighbors' transformed features and keeps the
// member nearest each centroid.
func (e *Engine) diversify(art *artifacts.RecommenderArtifact, idx []int) (diversified, error) {
	rows, err := art.Catalog.Rows(idx)
	if err != nil {
		return diversified{}, fmt.Errorf("catalog lookup: %w", err)
	}

	features := make([]property.Record, len(rows))
	for i, row := range rows {
		if features[i], err = row.Select(art.FeatureNames); err != nil {
			return diversified{}, fmt.Errorf("neighbor features: %w", err)
		}
	}
	transformed, err := ml.TransformAll(&art.Preprocessor, features)
	if err != nil {
		return diversified{}, fmt.Errorf("preprocess neighbors: %w", err)
	}

	if len(transformed) < e.config.Clusters {
		// Returned in stored catalog units; only clustered picks are converted.
		return diversified{records: placePrice(rows), outcome: OutcomeUnclustered}, nil
	}

	km, err := ml.KMeans(transformed, e.config.KMeans())
	if err != nil {
		return diversified{}, fmt.Errorf("cluster neighbors: %w", err)
	}

	picks := make([]property.Record, 0, e.config.Clusters)
	for c := 0; c < e.config.Clusters; c++ {
		best := ml.Closest(transformed, km.Members(c), km.Centroids[c])
		if best < 0 {
			continue
		}
		picks = append(picks, rows[best].ToMarla())
	}
	return diversified{records: placePrice(picks), outcome: OutcomeClustered}, nil
}

// sample draws FallbackSize distinct catalog rows uniformly at random.
// A catalog smaller than FallbackSize is returned whole in random order.
func (e *Engine) sample(art *artifacts.RecommenderArtifact) ([]property.Record, error) {
	n := art.Catalog.Len()
	if n == 0 {
		return nil, errors.New("catalog is empty")
	}

	e.rngMu.Lock()
	perm := e.rng.Perm(n)
	e.rngMu.Unlock()

	k := min(e.config.FallbackSize, n)
	rows, err := art.Catalog.Rows(perm[:k])
	if err != nil {
		return nil, err
	}
	return placePrice(rows), nil
}

// placePrice moves price immediately after property_type where both exist.
func placePrice(records []property.Record) []property.Record {
	for i := range records {
		if price, ok := records[i].Get(property.FieldPrice); ok && records[i].Has(property.FieldPropertyType) {
			records[i].InsertAfter(property.FieldPropertyType, property.FieldPrice, price)
		}
	}
	return records
}

// Stats returns a snapshot of engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:  e.requestCount.Load(),
		Fallbacks: e.fallbackCount.Load(),
	}
}
