// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/houseoracle/internal/property"
)

// maxRequestBodyBytes caps POST /predict bodies.
const maxRequestBodyBytes = 1 << 20

var (
	errMissingFields  = errors.New("missing required fields")
	errInvalidPurpose = errors.New("invalid purpose")
	errBodyTooLarge   = errors.New("request body too large")
)

// PredictRequest is a decoded POST /predict body.
type PredictRequest struct {
	Purpose property.Purpose
	// Property holds every attribute except purpose, keys ordered lexically.
	Property property.Record
}

// decodePredictRequest reads a JSON object body of at most
// maxRequestBodyBytes. An empty, malformed or
// non-object body, or one without purpose, yields errMissingFields; a purpose
// that is not "rent" or "sale" in any case yields errInvalidPurpose.
func decodePredictRequest(r *http.Request) (*PredictRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errMissingFields
	}

	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return nil, errMissingFields
	}

	var rec property.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, errMissingFields
	}

	raw, ok := rec.Get(property.FieldPurpose)
	if !ok {
		return nil, errMissingFields
	}
	text, ok := raw.(string)
	if !ok {
		return nil, errInvalidPurpose
	}
	purpose, err := property.ParsePurpose(text)
	if err != nil {
		return nil, errInvalidPurpose
	}

	rec.Delete(property.FieldPurpose)
	return &PredictRequest{Purpose: purpose, Property: rec}, nil
}
