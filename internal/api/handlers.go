// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/houseoracle/internal/logging"
	"github.com/tomtom215/houseoracle/internal/property"
	"github.com/tomtom215/houseoracle/internal/recommend"
	"github.com/tomtom215/houseoracle/internal/validation"
)

// WelcomeMessage is served on GET /.
const WelcomeMessage = "Welcome to the HouseOracle API"

// PricePredictor estimates a price for a property record with area in Marla.
type PricePredictor interface {
	Predict(ctx context.Context, rec property.Record, purpose property.Purpose) (int64, error)
}

// Recommender returns catalog rows similar to a priced property record.
type Recommender interface {
	Recommend(ctx context.Context, input property.Record, purpose property.Purpose) (*recommend.Result, error)
}

// Readiness reports whether every artifact the service needs is loaded.
type Readiness interface {
	Complete() bool
	Failures() []string
}

// Handler serves the HouseOracle endpoints.
type Handler struct {
	predictor   PricePredictor
	recommender Recommender
	readiness   Readiness
	startTime   time.Time
	logger      zerolog.Logger
}

// NewHandler creates a handler. readiness may be nil, in which case the
// service always reports ready.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(predictor PricePredictor, recommender Recommender, readiness Readiness, logger zerolog.Logger) (*Handler, error) {
	if predictor == nil {
		return nil, errors.New("api: nil predictor")
	}
	if recommender == nil {
		return nil, errors.New("api: nil recommender")
	}
	return &Handler{
		predictor:   predictor,
		recommender: recommender,
		readiness:   readiness,
		startTime:   time.Now(),
		logger:      logging.Component(logger, "api"),
	}, nil
}

// Home serves the plain-text welcome banner.
func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	respondText(w, http.StatusOK, WelcomeMessage)
}

// Predict handles POST /predict: it prices the submitted property and
// returns up to three similar catalog listings.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	req, err := decodePredictRequest(r)
	switch {
	case errors.Is(err, errInvalidPurpose):
		respondError(w, http.StatusBadRequest, msgInvalidPurpose, "")
		return
	case errors.Is(err, errBodyTooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, msgInvalidInput, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusBadRequest, msgMissingFields, "")
		return
	}

	if verr := validation.ValidateProperty(req.Property); verr != nil {
		respondError(w, http.StatusBadRequest, msgInvalidInput, verr.Error())
		return
	}

	ctx := r.Context()
	price, err := h.predictor.Predict(ctx, req.Property, req.Purpose)
	if err != nil {
		h.fail(w, r, req.Purpose, "predict", err)
		return
	}

	input := req.Property.Clone()
	input.InsertAfter(property.FieldPropertyType, property.FieldPrice, float64(price))

	result, err := h.recommender.Recommend(ctx, input, req.Purpose)
	if err != nil {
		h.fail(w, r, req.Purpose, "recommend", err)
		return
	}

	recs := result.Records
	if recs == nil {
		recs = []property.Record{}
	}
	respondJSON(w, http.StatusOK, &PredictResponse{
		PredictedPrice:  price,
		Recommendations: recs,
	})
}

// fail logs a pipeline error and writes the mapped error response. A request
// whose deadline passed is left to the timeout middleware.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, purpose property.Purpose, stage string, err error) {
	status, message := statusForError(err)

	logger := logging.CtxWith(r.Context(), h.logger)
	event := logger.Error()
	if status < http.StatusInternalServerError {
		event = logger.Debug()
	}
	event.
		Str("purpose", purpose.String()).
		Str("stage", stage).
		Str("error", logging.SanitizeValue(err.Error())).
		Int("status", status).
		Msg("Prediction request failed")

	if status == http.StatusGatewayTimeout && r.Context().Err() != nil {
		return
	}
	respondError(w, status, message, err.Error())
}
