// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package ml

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

type mapRow map[string]any

func (m mapRow) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func testPreprocessor() Preprocessor {
	return Preprocessor{Steps: []ColumnStep{
		{Kind: StepStandardScale, Columns: []string{"area", "baths"}, Mean: []float64{1, 2}, Scale: []float64{2, 1}},
		{Kind: StepOrdinal, Columns: []string{"property_type"}, Categories: [][]string{{"flat", "house"}}, UnknownValue: -1},
		{Kind: StepOneHot, Columns: []string{"city"}, Categories: [][]string{{"Lahore", "Karachi"}}},
		{Kind: StepTargetEncode, Columns: []string{"location"}, Mapping: []map[string]float64{{"DHA": 0.9}}, Default: []float64{0.5}},
		{Kind: StepPassthrough, Columns: []string{"location_tier"}},
	}}
}

func TestPreprocessorTransform(t *testing.T) {
	t.Parallel()

	p := testPreprocessor()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := p.OutputWidth(); got != 7 {
		t.Errorf("OutputWidth = %d, want 7", got)
	}

	tests := []struct {
		name string
		row  mapRow
		want []float64
	}{
		{
			name: "known categories",
			row:  mapRow{"area": 5.0, "baths": 3.0, "property_type": "house", "city": "Karachi", "location": "DHA", "location_tier": 1.0},
			want: []float64{2, 1, 1, 0, 1, 0.9, 1},
		},
		{
			name: "unknown categories",
			row:  mapRow{"area": 1.0, "baths": 2.0, "property_type": "villa", "city": "Quetta", "location": "X", "location_tier": 4.0},
			want: []float64{0, 0, -1, 0, 0, 0.5, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := p.Transform(tt.row)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Transform = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreprocessorErrors(t *testing.T) {
	t.Parallel()

	p := testPreprocessor()
	if _, err := p.Transform(mapRow{"area": 1.0}); err == nil || !strings.Contains(err.Error(), "missing") {
		t.Errorf("expected missing column error, got %v", err)
	}

	row := mapRow{"area": "big", "baths": 2.0, "property_type": "flat", "city": "Lahore", "location": "DHA", "location_tier": 1.0}
	if _, err := p.Transform(row); err == nil {
		t.Error("expected conversion error for non-numeric area")
	}

	invalid := []Preprocessor{
		{},
		{Steps: []ColumnStep{{Kind: StepStandardScale, Columns: []string{"a"}, Mean: []float64{0}, Scale: []float64{0}}}},
		{Steps: []ColumnStep{{Kind: StepOrdinal, Columns: []string{"a"}}}},
		{Steps: []ColumnStep{{Kind: "pca", Columns: []string{"a"}}}},
		{Steps: []ColumnStep{{Kind: StepPassthrough}}},
	}
	for i, ip := range invalid {
		if err := ip.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestRegressorLinear(t *testing.T) {
	t.Parallel()

	r := Regressor{Kind: RegressorLinear, Coefficients: []float64{2, -1}, Intercept: 0.5}
	if err := r.Validate(2); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got, err := r.Predict([]float64{3, 1})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != 5.5 {
		t.Errorf("Predict = %v, want 5.5", got)
	}
	if _, err := r.Predict([]float64{1}); err == nil {
		t.Error("expected width mismatch error")
	}
}

func TestRegressorGradientBoosting(t *testing.T) {
	t.Parallel()

	stump := Tree{Nodes: []TreeNode{
		{Feature: 0, Threshold: 1, Left: 1, Right: 2, DefaultLeft: true},
		{Leaf: true, Value: -0.25},
		{Leaf: true, Value: 0.75},
	}}
	r := Regressor{Kind: RegressorGradientBoosting, BaseScore: 1, Trees: []Tree{stump, stump}}
	if err := r.Validate(1); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		x    float64
		want float64
	}{
		{0.5, 0.5},
		{1, 2.5},
		{math.NaN(), 0.5},
	}
	for _, tt := range tests {
		got, err := r.Predict([]float64{tt.x})
		if err != nil {
			t.Fatalf("Predict(%v): %v", tt.x, err)
		}
		if got != tt.want {
			t.Errorf("Predict(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}

	cyclic := Regressor{Kind: RegressorGradientBoosting, Trees: []Tree{{Nodes: []TreeNode{{Left: 0, Right: 0}}}}}
	if err := cyclic.Validate(1); err == nil {
		t.Error("expected validation error for self-referencing node")
	}
}

func TestTargetTransform(t *testing.T) {
	t.Parallel()

	for _, y := range []float64{0, 0.5, 3, 12.25} {
		got, err := TargetLog1p.Inverse(Log1p(y))
		if err != nil {
			t.Fatalf("Inverse: %v", err)
		}
		if math.Abs(got-y) > 1e-9 {
			t.Errorf("Expm1(Log1p(%v)) = %v", y, got)
		}
	}
	if _, err := TargetTransform("sqrt").Inverse(1); err == nil {
		t.Error("expected error for unknown transform")
	}
}

func TestPipelinePredict(t *testing.T) {
	t.Parallel()

	p := Pipeline{
		Preprocessor:    Preprocessor{Steps: []ColumnStep{{Kind: StepPassthrough, Columns: []string{"x"}}}},
		Regressor:       Regressor{Kind: RegressorLinear, Coefficients: []float64{1}},
		TargetTransform: TargetLog1p,
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got, err := p.Predict(mapRow{"x": math.Log1p(4)})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if math.Abs(got-4) > 1e-9 {
		t.Errorf("Predict = %v, want 4", got)
	}

	if _, err := p.Predict(mapRow{"x": nil}); err == nil {
		t.Error("expected non-finite output error for missing value")
	}
}

func TestNearestNeighborsQuery(t *testing.T) {
	t.Parallel()

	nn := NearestNeighbors{K: 3, Points: [][]float64{{0, 0}, {5, 5}, {1, 0}, {0, 1}, {10, 10}}}
	if err := nn.Validate(2); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	got, err := nn.Query([]float64{0, 0})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	idx := make([]int, len(got))
	for i, n := range got {
		idx[i] = n.Index
	}
	// {1,0} and {0,1} tie; lower index first.
	if want := []int{0, 2, 3}; !reflect.DeepEqual(idx, want) {
		t.Errorf("Query indices = %v, want %v", idx, want)
	}

	if _, err := nn.Query([]float64{0}); err == nil {
		t.Error("expected dimension mismatch error")
	}
	if _, err := nn.Query([]float64{math.NaN(), 0}); err == nil {
		t.Error("expected NaN query error")
	}
	big := NearestNeighbors{K: 10, Points: nn.Points}
	if err := big.Validate(2); err == nil {
		t.Error("expected k > n error")
	}
}

func clusteredPoints() [][]float64 {
	return [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
		{-10, 10}, {-10.1, 10}, {-10, 10.1},
	}
}

func TestKMeansSeparatesClusters(t *testing.T) {
	t.Parallel()

	points := clusteredPoints()
	res, err := KMeans(points, DefaultKMeansConfig())
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	if len(res.Centroids) != 3 {
		t.Fatalf("expected 3 centroids, got %d", len(res.Centroids))
	}
	for g := 0; g < 3; g++ {
		label := res.Labels[g*3]
		for j := 1; j < 3; j++ {
			if res.Labels[g*3+j] != label {
				t.Errorf("group %d split across clusters: %v", g, res.Labels)
			}
		}
		if len(res.Members(label)) != 3 {
			t.Errorf("cluster %d has %d members, want 3", label, len(res.Members(label)))
		}
	}
}

func TestKMeansDeterministic(t *testing.T) {
	t.Parallel()

	points := [][]float64{{1, 2}, {3, 1}, {0, 0}, {4, 4}, {2, 2}, {5, 0}, {1, 5}}
	cfg := DefaultKMeansConfig()

	first, err := KMeans(points, cfg)
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := KMeans(points, cfg)
		if err != nil {
			t.Fatalf("KMeans: %v", err)
		}
		if !reflect.DeepEqual(first.Labels, again.Labels) || !reflect.DeepEqual(first.Centroids, again.Centroids) {
			t.Fatalf("run %d differs: %v vs %v", i, first.Labels, again.Labels)
		}
	}
}

func TestKMeansErrors(t *testing.T) {
	t.Parallel()

	if _, err := KMeans([][]float64{{0}, {1}}, DefaultKMeansConfig()); err == nil {
		t.Error("expected error with fewer points than clusters")
	}
	if _, err := KMeans([][]float64{{0}, {math.NaN()}, {1}}, DefaultKMeansConfig()); err == nil {
		t.Error("expected error for NaN point")
	}
	bad := DefaultKMeansConfig()
	bad.Restarts = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected validation error for zero restarts")
	}
}

func TestKMeansIdenticalPoints(t *testing.T) {
	t.Parallel()

	points := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}
	res, err := KMeans(points, DefaultKMeansConfig())
	if err != nil {
		t.Fatalf("KMeans: %v", err)
	}
	if res.Inertia != 0 {
		t.Errorf("Inertia = %v, want 0", res.Inertia)
	}
}

func TestClosest(t *testing.T) {
	t.Parallel()

	points := clusteredPoints()
	if got := Closest(points, []int{3, 4, 5}, []float64{10.09, 10}); got != 4 {
		t.Errorf("Closest = %d, want 4", got)
	}
	if got := Closest(points, nil, []float64{0, 0}); got != -1 {
		t.Errorf("Closest(empty) = %d, want -1", got)
	}
}
