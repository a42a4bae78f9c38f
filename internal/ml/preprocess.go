// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package ml

import (
	"fmt"
	"math"
	"strconv"
)

// Row is a named-attribute input to a Preprocessor.
type Row interface {
	Get(key string) (any, bool)
}

// StepKind identifies a column transformation.
type StepKind string

const (
	// StepStandardScale emits (x - mean) / scale per column.
	StepStandardScale StepKind = "standard_scale"
	// StepOrdinal emits the index of the category, or UnknownValue.
	StepOrdinal StepKind = "ordinal"
	// StepOneHot emits one indicator per category; unknown categories emit all zeros.
	StepOneHot StepKind = "one_hot"
	// StepTargetEncode emits the fitted per-category target statistic, or Default.
	StepTargetEncode StepKind = "target_encode"
	// StepPassthrough emits the numeric value unchanged.
	StepPassthrough StepKind = "passthrough"
)

// ColumnStep transforms a group of columns. Only the fields used by its
// Kind are populated.
type ColumnStep struct {
	Kind    StepKind `json:"kind" yaml:"kind"`
	Columns []string `json:"columns" yaml:"columns"`

	// standard_scale
	Mean  []float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Scale []float64 `json:"scale,omitempty" yaml:"scale,omitempty"`

	// ordinal, one_hot: Categories[i] lists the fitted categories of Columns[i].
	Categories   [][]string `json:"categories,omitempty" yaml:"categories,omitempty"`
	UnknownValue float64    `json:"unknown_value,omitempty" yaml:"unknown_value,omitempty"`

	// target_encode: Mapping[i] maps categories of Columns[i] to encoded values.
	Mapping []map[string]float64 `json:"mapping,omitempty" yaml:"mapping,omitempty"`
	Default []float64            `json:"default,omitempty" yaml:"default,omitempty"`
}

// Preprocessor applies its steps in order and concatenates their outputs,
// like a fitted column transformer. Columns not named by any step are dropped.
type Preprocessor struct {
	Steps []ColumnStep `json:"steps" yaml:"steps"`
}

// Validate checks the fitted parameters for internal consistency.
func (p *Preprocessor) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("preprocessor has no steps")
	}
	for i := range p.Steps {
		if err := p.Steps[i].validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, p.Steps[i].Kind, err)
		}
	}
	return nil
}

func (s *ColumnStep) validate() error {
	n := len(s.Columns)
	if n == 0 {
		return fmt.Errorf("no columns")
	}
	switch s.Kind {
	case StepStandardScale:
		if len(s.Mean) != n || len(s.Scale) != n {
			return fmt.Errorf("mean/scale length must equal %d columns", n)
		}
		for i, sc := range s.Scale {
			if sc == 0 || math.IsNaN(sc) {
				return fmt.Errorf("scale for %q must be non-zero", s.Columns[i])
			}
		}
	case StepOrdinal, StepOneHot:
		if len(s.Categories) != n {
			return fmt.Errorf("categories length must equal %d columns", n)
		}
	case StepTargetEncode:
		if len(s.Mapping) != n || len(s.Default) != n {
			return fmt.Errorf("mapping/default length must equal %d columns", n)
		}
	case StepPassthrough:
	default:
		return fmt.Errorf("unknown step kind")
	}
	return nil
}

// Columns returns every input column consumed, in step order.
func (p *Preprocessor) Columns() []string {
	var cols []string
	for i := range p.Steps {
		cols = append(cols, p.Steps[i].Columns...)
	}
	return cols
}

// OutputWidth returns the length of a transformed vector.
func (p *Preprocessor) OutputWidth() int {
	width := 0
	for i := range p.Steps {
		s := &p.Steps[i]
		if s.Kind == StepOneHot {
			for _, cats := range s.Categories {
				width += len(cats)
			}
			continue
		}
		width += len(s.Columns)
	}
	return width
}

// Transform converts a row into a feature vector.
func (p *Preprocessor) Transform(row Row) ([]float64, error) {
	out := make([]float64, 0, p.OutputWidth())
	for i := range p.Steps {
		var err error
		out, err = p.Steps[i].apply(row, out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// TransformAll converts each row; the first failure aborts.
func TransformAll[R Row](p *Preprocessor, rows []R) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		vec, err := p.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

func (s *ColumnStep) apply(row Row, out []float64) ([]float64, error) {
	for i, col := range s.Columns {
		v, ok := row.Get(col)
		if !ok {
			return nil, fmt.Errorf("column %q is missing", col)
		}

		switch s.Kind {
		case StepStandardScale:
			f, err := numeric(col, v)
			if err != nil {
				return nil, err
			}
			out = append(out, (f-s.Mean[i])/s.Scale[i])
		case StepPassthrough:
			f, err := numeric(col, v)
			if err != nil {
				return nil, err
			}
			out = append(out, f)
		case StepOrdinal:
			code := s.UnknownValue
			key := categoryKey(v)
			for j, c := range s.Categories[i] {
				if c == key {
					code = float64(j)
					break
				}
			}
			out = append(out, code)
		case StepOneHot:
			key := categoryKey(v)
			for _, c := range s.Categories[i] {
				if c == key {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			}
		case StepTargetEncode:
			enc, ok := s.Mapping[i][categoryKey(v)]
			if !ok {
				enc = s.Default[i]
			}
			out = append(out, enc)
		default:
			return nil, fmt.Errorf("unknown step kind %q", s.Kind)
		}
	}
	return out, nil
}

// numeric accepts float64 and bool; nil becomes NaN.
func numeric(col string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case nil:
		return math.NaN(), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: could not convert string %q to float", col, x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("column %q: unsupported value type %T", col, v)
	}
}

func categoryKey(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
