// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package artifacts

import (
	"fmt"

	"github.com/tomtom215/houseoracle/internal/property"
)

// ColumnKind is the storage type of a catalog column.
type ColumnKind string

const (
	ColumnNumber ColumnKind = "number"
	ColumnText   ColumnKind = "text"
	ColumnBool   ColumnKind = "bool"
)

// Column is one typed catalog column. Only the slice matching Kind is
// populated; Null marks missing cells.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numbers []float64
	Texts   []string
	Bools   []bool
	Null    []bool
}

// Catalog is the columnar reference data a recommender index was fitted on.
// Column order is the record order used in responses.
type Catalog struct {
	Columns []Column
}

// NewCatalog builds a catalog from a header and row values. Values may be
// numbers, strings, bools or nil; each column must hold a single kind.
func NewCatalog(names []string, rows [][]any) (*Catalog, error) {
	c := &Catalog{Columns: make([]Column, len(names))}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("duplicate catalog column %q", name)
		}
		seen[name] = true
		c.Columns[i] = Column{Name: name, Null: make([]bool, len(rows))}
	}

	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("catalog row %d has %d values, header has %d", r, len(row), len(names))
		}
		rec := property.Record{}
		for i, name := range names {
			rec.Set(name, row[i])
		}
		for i := range c.Columns {
			v, _ := rec.Get(names[i])
			if err := c.Columns[i].appendValue(r, v, len(rows)); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

func (col *Column) appendValue(row int, v any, total int) error {
	if v == nil {
		col.Null[row] = true
		col.grow(total)
		return nil
	}

	var kind ColumnKind
	switch v.(type) {
	case float64:
		kind = ColumnNumber
	case string:
		kind = ColumnText
	case bool:
		kind = ColumnBool
	default:
		return fmt.Errorf("column %q row %d: unsupported value type %T", col.Name, row, v)
	}
	if col.Kind == "" {
		col.Kind = kind
	} else if col.Kind != kind {
		return fmt.Errorf("column %q row %d: %s value in %s column", col.Name, row, kind, col.Kind)
	}
	col.grow(total)

	switch x := v.(type) {
	case float64:
		col.Numbers[row] = x
	case string:
		col.Texts[row] = x
	case bool:
		col.Bools[row] = x
	}
	return nil
}

// grow sizes the value slice for Kind once it is known.
func (col *Column) grow(total int) {
	switch col.Kind {
	case ColumnNumber:
		if col.Numbers == nil {
			col.Numbers = make([]float64, total)
		}
	case ColumnText:
		if col.Texts == nil {
			col.Texts = make([]string, total)
		}
	case ColumnBool:
		if col.Bools == nil {
			col.Bools = make([]bool, total)
		}
	}
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	if len(c.Columns) == 0 {
		return 0
	}
	return len(c.Columns[0].Null)
}

// Column returns the named column.
func (c *Catalog) Column(name string) (*Column, bool) {
	for i := range c.Columns {
		if c.Columns[i].Name == name {
			return &c.Columns[i], true
		}
	}
	return nil, false
}

// Validate checks that every column has one value per row.
func (c *Catalog) Validate() error {
	if len(c.Columns) == 0 {
		return fmt.Errorf("catalog has no columns")
	}
	n := len(c.Columns[0].Null)
	seen := make(map[string]bool, len(c.Columns))
	for i := range c.Columns {
		col := &c.Columns[i]
		if seen[col.Name] {
			return fmt.Errorf("duplicate catalog column %q", col.Name)
		}
		seen[col.Name] = true
		if len(col.Null) != n {
			return fmt.Errorf("column %q has %d rows, want %d", col.Name, len(col.Null), n)
		}
		var values int
		switch col.Kind {
		case ColumnNumber:
			values = len(col.Numbers)
		case ColumnText:
			values = len(col.Texts)
		case ColumnBool:
			values = len(col.Bools)
		case "":
			// All-null column.
			values = n
		default:
			return fmt.Errorf("column %q has unknown kind %q", col.Name, col.Kind)
		}
		if values != n {
			return fmt.Errorf("column %q has %d values, want %d", col.Name, values, n)
		}
	}
	return nil
}

// Row materializes row i as a record in column order.
func (c *Catalog) Row(i int) (property.Record, error) {
	if i < 0 || i >= c.Len() {
		return property.Record{}, fmt.Errorf("catalog row %d out of range [0,%d)", i, c.Len())
	}
	var rec property.Record
	for j := range c.Columns {
		col := &c.Columns[j]
		rec.Set(col.Name, col.value(i))
	}
	return rec, nil
}

// Rows materializes the given row indices.
func (c *Catalog) Rows(idx []int) ([]property.Record, error) {
	out := make([]property.Record, len(idx))
	for k, i := range idx {
		rec, err := c.Row(i)
		if err != nil {
			return nil, err
		}
		out[k] = rec
	}
	return out, nil
}

func (col *Column) value(i int) any {
	if col.Null[i] {
		return nil
	}
	switch col.Kind {
	case ColumnNumber:
		return col.Numbers[i]
	case ColumnText:
		return col.Texts[i]
	case ColumnBool:
		return col.Bools[i]
	default:
		return nil
	}
}
