// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package property

import "errors"

var (
	// ErrInvalidArgument reports a caller-supplied value outside the accepted domain,
	// such as an unknown purpose or a record missing a required attribute.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrArtifactLoad reports that a required model artifact is missing or unreadable.
	ErrArtifactLoad = errors.New("artifact load failed")

	// ErrRecommendationDegraded marks a recommendation served from the random fallback.
	// It never reaches HTTP callers.
	ErrRecommendationDegraded = errors.New("recommendation degraded")
)
