// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package property

import (
	"fmt"
	"math"
)

// DefaultLocationTier is assigned to locations absent from the tier map.
const DefaultLocationTier = 4

// TierMap maps a location name to its tier.
type TierMap map[string]int

// Tier returns the tier for location, or DefaultLocationTier when unknown.
func (m TierMap) Tier(location string) int {
	if tier, ok := m[location]; ok {
		return tier
	}
	return DefaultLocationTier
}

// EngineerFeatures derives model features from a record whose area is in Kanal.
// It returns a new record with area replaced by log1p(area), a location_tier
// looked up in tiers, and area_room_ratio = log1p(area) / (bedrooms + baths).
//
// A record with bedrooms + baths <= 0 is rejected with ErrInvalidArgument.
func EngineerFeatures(r Record, tiers TierMap) (Record, error) {
	area, ok := r.Float(FieldArea)
	if !ok {
		return Record{}, fmt.Errorf("%w: %s must be numeric", ErrInvalidArgument, FieldArea)
	}
	if area <= -1 {
		return Record{}, fmt.Errorf("%w: %s must be greater than -1, got %g", ErrInvalidArgument, FieldArea, area)
	}
	bedrooms, ok := r.Float(FieldBedrooms)
	if !ok {
		return Record{}, fmt.Errorf("%w: %s must be numeric", ErrInvalidArgument, FieldBedrooms)
	}
	baths, ok := r.Float(FieldBaths)
	if !ok {
		return Record{}, fmt.Errorf("%w: %s must be numeric", ErrInvalidArgument, FieldBaths)
	}
	rooms := bedrooms + baths
	if rooms <= 0 {
		return Record{}, fmt.Errorf("%w: bedrooms + baths must be positive, got %g", ErrInvalidArgument, rooms)
	}

	// Missing or non-string locations fall through to the default tier.
	location, _ := r.Text(FieldLocation)

	out := r.Clone()
	logArea := math.Log1p(area)
	out.Set(FieldArea, logArea)
	out.Set(FieldLocationTier, float64(tiers.Tier(location)))
	out.Set(FieldAreaRoomRatio, logArea/rooms)
	return out, nil
}
