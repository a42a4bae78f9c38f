// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/houseoracle/internal/property"
)

// statusForError maps a prediction pipeline error to an HTTP status and
// client message.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, property.ErrInvalidArgument):
		return http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, msgPredictionFailed
	default:
		return http.StatusInternalServerError, msgPredictionFailed
	}
}
