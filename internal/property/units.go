// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package property

// MarlaPerKanal is the fixed conversion factor: 1 Kanal = 20 Marla.
const MarlaPerKanal = 20

// ToKanal converts an area in Marla to Kanal.
func ToKanal(marla float64) float64 {
	return marla / MarlaPerKanal
}

// ToMarla converts an area in Kanal to Marla.
func ToMarla(kanal float64) float64 {
	return kanal * MarlaPerKanal
}

// ToKanal returns a copy of r with area converted from Marla to Kanal.
// A record without a numeric area is returned as an unchanged copy.
func (r Record) ToKanal() Record {
	return r.convertArea(ToKanal)
}

// ToMarla returns a copy of r with area converted from Kanal to Marla.
func (r Record) ToMarla() Record {
	return r.convertArea(ToMarla)
}

func (r Record) convertArea(fn func(float64) float64) Record {
	out := r.Clone()
	if area, ok := out.Float(FieldArea); ok {
		out.values[FieldArea] = fn(area)
	}
	return out
}
