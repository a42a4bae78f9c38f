// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RegressorKind identifies the regression model family.
type RegressorKind string

const (
	// RegressorLinear predicts Intercept + Coefficients·x.
	RegressorLinear RegressorKind = "linear"
	// RegressorGradientBoosting predicts BaseScore plus the sum of tree leaves.
	RegressorGradientBoosting RegressorKind = "gradient_boosting"
)

// Regressor is a fitted single-output regression model.
type Regressor struct {
	Kind RegressorKind `json:"kind" yaml:"kind"`

	Coefficients []float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`

	BaseScore float64 `json:"base_score,omitempty" yaml:"base_score,omitempty"`
	Trees     []Tree  `json:"trees,omitempty" yaml:"trees,omitempty"`
}

// Tree is a binary regression tree stored as a flat node slice rooted at index 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes" yaml:"nodes"`
}

// TreeNode is a split or a leaf. A split sends x[Feature] < Threshold to Left,
// otherwise to Right; a missing (NaN) value follows DefaultLeft.
type TreeNode struct {
	Leaf        bool    `json:"leaf,omitempty" yaml:"leaf,omitempty"`
	Value       float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Feature     int     `json:"feature,omitempty" yaml:"feature,omitempty"`
	Threshold   float64 `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Left        int     `json:"left,omitempty" yaml:"left,omitempty"`
	Right       int     `json:"right,omitempty" yaml:"right,omitempty"`
	DefaultLeft bool    `json:"default_left,omitempty" yaml:"default_left,omitempty"`
}

// Validate checks the model against the expected input width.
func (r *Regressor) Validate(width int) error {
	switch r.Kind {
	case RegressorLinear:
		if len(r.Coefficients) != width {
			return fmt.Errorf("linear regressor has %d coefficients, input width is %d", len(r.Coefficients), width)
		}
	case RegressorGradientBoosting:
		if len(r.Trees) == 0 {
			return fmt.Errorf("gradient boosting regressor has no trees")
		}
		for i := range r.Trees {
			if err := r.Trees[i].validate(width); err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown regressor kind %q", r.Kind)
	}
	return nil
}

// Predict returns the raw model output for one feature vector.
func (r *Regressor) Predict(x []float64) (float64, error) {
	switch r.Kind {
	case RegressorLinear:
		if len(x) != len(r.Coefficients) {
			return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(x), len(r.Coefficients))
		}
		return r.Intercept + floats.Dot(r.Coefficients, x), nil
	case RegressorGradientBoosting:
		sum := r.BaseScore
		for i := range r.Trees {
			leaf, err := r.Trees[i].Eval(x)
			if err != nil {
				return 0, fmt.Errorf("tree %d: %w", i, err)
			}
			sum += leaf
		}
		return sum, nil
	default:
		return 0, fmt.Errorf("unknown regressor kind %q", r.Kind)
	}
}

// Eval walks the tree for x and returns the leaf value.
func (t *Tree) Eval(x []float64) (float64, error) {
	idx := 0
	// Validated trees only point forward, so a walk visits at most len(Nodes) nodes.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, fmt.Errorf("node index %d out of range", idx)
		}
		n := &t.Nodes[idx]
		if n.Leaf {
			return n.Value, nil
		}
		if n.Feature < 0 || n.Feature >= len(x) {
			return 0, fmt.Errorf("split feature %d out of range for %d features", n.Feature, len(x))
		}
		v := x[n.Feature]
		switch {
		case math.IsNaN(v):
			if n.DefaultLeft {
				idx = n.Left
			} else {
				idx = n.Right
			}
		case v < n.Threshold:
			idx = n.Left
		default:
			idx = n.Right
		}
	}
	return 0, fmt.Errorf("tree walk did not reach a leaf")
}

func (t *Tree) validate(width int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	for i, n := range t.Nodes {
		if n.Leaf {
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d, input width is %d", i, n.Feature, width)
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

// TargetTransform names the inverse applied to raw regressor output.
type TargetTransform string

const (
	// TargetIdentity leaves output unchanged.
	TargetIdentity TargetTransform = ""
	// TargetLog1p marks models fitted on log1p(y); output is mapped back with expm1.
	TargetLog1p TargetTransform = "log1p"
)

// Inverse maps a model-space prediction back to target space.
func (t TargetTransform) Inverse(y float64) (float64, error) {
	switch t {
	case TargetIdentity:
		return y, nil
	case TargetLog1p:
		return Expm1(y), nil
	default:
		return 0, fmt.Errorf("unknown target transform %q", t)
	}
}

// Log1p returns log(1 + y).
func Log1p(y float64) float64 { return math.Log1p(y) }

// Expm1 returns exp(y) - 1, the inverse of Log1p.
func Expm1(y float64) float64 { return math.Expm1(y) }

// Pipeline chains a preprocessor, a regressor and a target transform.
type Pipeline struct {
	Preprocessor    Preprocessor    `json:"preprocessor" yaml:"preprocessor"`
	Regressor       Regressor       `json:"regressor" yaml:"regressor"`
	TargetTransform TargetTransform `json:"target_transform,omitempty" yaml:"target_transform,omitempty"`
}

// Validate checks every stage.
func (p *Pipeline) Validate() error {
	if err := p.Preprocessor.Validate(); err != nil {
		return fmt.Errorf("preprocessor: %w", err)
	}
	if err := p.Regressor.Validate(p.Preprocessor.OutputWidth()); err != nil {
		return fmt.Errorf("regressor: %w", err)
	}
	if _, err := p.TargetTransform.Inverse(0); err != nil {
		return err
	}
	return nil
}

// Predict runs one row through the pipeline. Non-finite output is an error.
func (p *Pipeline) Predict(row Row) (float64, error) {
	x, err := p.Preprocessor.Transform(row)
	if err != nil {
		return 0, fmt.Errorf("preprocess: %w", err)
	}
	raw, err := p.Regressor.Predict(x)
	if err != nil {
		return 0, fmt.Errorf("regress: %w", err)
	}
	y, err := p.TargetTransform.Inverse(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("model produced non-finite output %v", y)
	}
	return y, nil
}
