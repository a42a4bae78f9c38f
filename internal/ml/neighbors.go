// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package ml

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// NearestNeighbors is a brute-force Euclidean index over fitted points.
// K is fixed when the index is built.
type NearestNeighbors struct {
	K      int         `json:"k" yaml:"k"`
	Points [][]float64 `json:"points" yaml:"points"`
}

// Neighbor is one query result.
type Neighbor struct {
	Index    int
	Distance float64
}

// Validate checks K and the point dimensions against width.
func (nn *NearestNeighbors) Validate(width int) error {
	if nn.K < 1 {
		return fmt.Errorf("k must be at least 1, got %d", nn.K)
	}
	if nn.K > len(nn.Points) {
		return fmt.Errorf("k=%d exceeds %d indexed points", nn.K, len(nn.Points))
	}
	for i, p := range nn.Points {
		if len(p) != width {
			return fmt.Errorf("point %d has %d dimensions, want %d", i, len(p), width)
		}
	}
	return nil
}

// Query returns the K indexed points closest to x, nearest first.
// Ties are broken by lower index.
func (nn *NearestNeighbors) Query(x []float64) ([]Neighbor, error) {
	if nn.K < 1 || nn.K > len(nn.Points) {
		return nil, fmt.Errorf("expected 1 <= k <= %d, got %d", len(nn.Points), nn.K)
	}

	if floats.HasNaN(x) {
		return nil, fmt.Errorf("query contains NaN")
	}

	all := make([]Neighbor, len(nn.Points))
	for i, p := range nn.Points {
		if len(p) != len(x) {
			return nil, fmt.Errorf("query has %d dimensions, index has %d", len(x), len(p))
		}
		all[i] = Neighbor{Index: i, Distance: floats.Distance(p, x, 2)}
	}
	sort.SliceStable(all, func(a, b int) bool {
		return all[a].Distance < all[b].Distance
	})
	return all[:nn.K], nil
}
