// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package property

import (
	"fmt"
	"strings"
)

// Purpose selects the rent or sale model set.
type Purpose int

const (
	// PurposeUnknown is the zero value and never valid.
	PurposeUnknown Purpose = iota
	// PurposeRent selects rental price models.
	PurposeRent
	// PurposeSale selects sale price models.
	PurposeSale
)

// Price multipliers applied to raw regressor output.
const (
	RentPriceScale = 100_000
	SalePriceScale = 10_000_000
)

// Purposes lists every valid purpose in a stable order.
func Purposes() []Purpose {
	return []Purpose{PurposeRent, PurposeSale}
}

// ParsePurpose parses "rent" or "sale" case-insensitively.
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(s) {
	case "rent":
		return PurposeRent, nil
	case "sale":
		return PurposeSale, nil
	default:
		return PurposeUnknown, fmt.Errorf("%w: purpose must be either 'rent' or 'sale', got %q", ErrInvalidArgument, s)
	}
}

// String returns the lowercase purpose name used in artifact names and metric labels.
func (p Purpose) String() string {
	switch p {
	case PurposeRent:
		return "rent"
	case PurposeSale:
		return "sale"
	default:
		return "unknown"
	}
}

// Valid reports whether p is rent or sale.
func (p Purpose) Valid() bool {
	return p == PurposeRent || p == PurposeSale
}

// PriceScale returns the multiplier for raw model output.
func (p Purpose) PriceScale() float64 {
	switch p {
	case PurposeRent:
		return RentPriceScale
	case PurposeSale:
		return SalePriceScale
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Purpose) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: cannot marshal purpose %d", ErrInvalidArgument, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Purpose) UnmarshalText(text []byte) error {
	parsed, err := ParsePurpose(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
