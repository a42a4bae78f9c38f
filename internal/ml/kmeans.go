// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package ml

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// KMeansConfig controls a k-means fit. The same Seed and input always
// produce the same result.
type KMeansConfig struct {
	Clusters      int
	Seed          int64
	MaxIterations int
	// Restarts is the number of independent k-means++ initializations; the
	// fit with the lowest inertia wins.
	Restarts  int
	Tolerance float64
}

// DefaultKMeansConfig returns three clusters seeded with 0.
func DefaultKMeansConfig() KMeansConfig {
	return KMeansConfig{
		Clusters:      3,
		Seed:          0,
		MaxIterations: 300,
		Restarts:      10,
		Tolerance:     1e-4,
	}
}

// Validate checks the configuration.
func (c KMeansConfig) Validate() error {
	if c.Clusters < 1 {
		return fmt.Errorf("clusters must be at least 1, got %d", c.Clusters)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", c.MaxIterations)
	}
	if c.Restarts < 1 {
		return fmt.Errorf("restarts must be at least 1, got %d", c.Restarts)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", c.Tolerance)
	}
	return nil
}

// KMeansResult holds fitted centroids and point assignments.
type KMeansResult struct {
	Centroids [][]float64
	Labels    []int
	Inertia   float64
}

// Members returns the indices of points assigned to cluster c.
func (r *KMeansResult) Members(c int) []int {
	var out []int
	for i, l := range r.Labels {
		if l == c {
			out = append(out, i)
		}
	}
	return out
}

// KMeans clusters points with k-means++ initialization and Lloyd iterations.
func KMeans(points [][]float64, cfg KMeansConfig) (*KMeansResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(points) < cfg.Clusters {
		return nil, fmt.Errorf("n_samples=%d should be >= n_clusters=%d", len(points), cfg.Clusters)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("point %d has %d dimensions, want %d", i, len(p), dim)
		}
		if floats.HasNaN(p) {
			return nil, fmt.Errorf("point %d contains NaN", i)
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic clustering, not security sensitive

	var best *KMeansResult
	for run := 0; run < cfg.Restarts; run++ {
		centroids := initPlusPlus(points, cfg.Clusters, rng)
		res := lloyd(points, centroids, cfg.MaxIterations, cfg.Tolerance)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// initPlusPlus picks initial centroids by D² sampling.
func initPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.Intn(len(points))]))

	d2 := make([]float64, len(points))
	for i, p := range points {
		d2[i] = sqDist(p, centroids[0])
	}

	for len(centroids) < k {
		total := floats.Sum(d2)
		next := 0
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i, d := range d2 {
				acc += d
				if acc >= target {
					next = i
					break
				}
			}
		} else {
			// All points coincide with existing centroids.
			next = rng.Intn(len(points))
		}
		c := clone(points[next])
		centroids = append(centroids, c)
		for i, p := range points {
			if d := sqDist(p, c); d < d2[i] {
				d2[i] = d
			}
		}
	}
	return centroids
}

func lloyd(points, centroids [][]float64, maxIter int, tol float64) *KMeansResult {
	k := len(centroids)
	dim := len(points[0])
	labels := make([]int, len(points))
	tolSq := tol * tol * float64(dim)

	for iter := 0; iter < maxIter; iter++ {
		assign(points, centroids, labels)

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, p := range points {
			floats.Add(sums[labels[i]], p)
			counts[labels[i]]++
		}

		shift := 0.0
		for c := range centroids {
			if counts[c] == 0 {
				// Relocate an empty cluster to the point farthest from its centroid.
				far := farthest(points, centroids, labels)
				sums[c] = clone(points[far])
				labels[far] = c
				counts[c] = 1
			} else {
				floats.Scale(1/float64(counts[c]), sums[c])
			}
			shift += sqDist(centroids[c], sums[c])
			centroids[c] = sums[c]
		}
		if shift <= tolSq {
			break
		}
	}

	inertia := assign(points, centroids, labels)
	return &KMeansResult{Centroids: centroids, Labels: labels, Inertia: inertia}
}

// assign labels each point with its nearest centroid and returns the inertia.
func assign(points, centroids [][]float64, labels []int) float64 {
	inertia := 0.0
	for i, p := range points {
		best, bestD := 0, math.Inf(1)
		for c, cen := range centroids {
			if d := sqDist(p, cen); d < bestD {
				best, bestD = c, d
			}
		}
		labels[i] = best
		inertia += bestD
	}
	return inertia
}

func farthest(points, centroids [][]float64, labels []int) int {
	idx, maxD := 0, -1.0
	for i, p := range points {
		if d := sqDist(p, centroids[labels[i]]); d > maxD {
			idx, maxD = i, d
		}
	}
	return idx
}

// Closest returns the member of idx nearest (Euclidean) to target, or -1 when idx is empty.
func Closest(points [][]float64, idx []int, target []float64) int {
	best, bestD := -1, math.Inf(1)
	for _, i := range idx {
		if d := floats.Distance(points[i], target, 2); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
