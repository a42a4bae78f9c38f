// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package property

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// Well-known attribute names.
const (
	FieldArea          = "area"
	FieldBedrooms      = "bedrooms"
	FieldBaths         = "baths"
	FieldLocation      = "location"
	FieldPropertyType  = "property_type"
	FieldPrice         = "price"
	FieldPurpose       = "purpose"
	FieldLocationTier  = "location_tier"
	FieldAreaRoomRatio = "area_room_ratio"
)

// Record is an ordered mapping of attribute name to value. Values are
// float64, string, bool or nil. The zero value is an empty record ready to use.
//
// Key order is preserved so encoded output can place price immediately
// after property_type.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord builds a record from a map. Keys are ordered lexically because
// map iteration order carries no meaning.
func NewRecord(m map[string]any) Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var r Record
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// Set assigns a value, appending the key if it is new. Integer and json.Number
// values are stored as float64.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = normalize(value)
}

// Get returns the value for key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Float returns the value for key as a float64.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r.values[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Text returns the value for key as a string.
func (r Record) Text(key string) (string, bool) {
	v, ok := r.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Delete removes key, returning true when it was present.
func (r *Record) Delete(key string) bool {
	if _, ok := r.values[key]; !ok {
		return false
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
	return true
}

// InsertAfter places key immediately after anchor, moving it if it already
// exists. When anchor is absent the key is appended and false is returned.
func (r *Record) InsertAfter(anchor, key string, value any) bool {
	r.Delete(key)

	pos := -1
	for i, k := range r.keys {
		if k == anchor {
			pos = i + 1
			break
		}
	}
	if pos < 0 {
		r.Set(key, value)
		return false
	}

	if r.values == nil {
		r.values = make(map[string]any)
	}
	r.keys = append(r.keys, "")
	copy(r.keys[pos+1:], r.keys[pos:])
	r.keys[pos] = key
	r.values[key] = normalize(value)
	return true
}

// Keys returns the attribute names in order.
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of attributes.
func (r Record) Len() int {
	return len(r.keys)
}

// Clone returns an independent copy.
func (r Record) Clone() Record {
	c := Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(c.keys, r.keys)
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Select returns a copy restricted to the named keys, in the given order.
// Missing keys are reported as an error.
func (r Record) Select(keys []string) (Record, error) {
	var out Record
	for _, k := range keys {
		v, ok := r.values[k]
		if !ok {
			return Record{}, fmt.Errorf("%w: missing attribute %q", ErrInvalidArgument, k)
		}
		out.Set(k, v)
	}
	return out, nil
}

// MarshalJSON encodes the record as a JSON object in key order.
// Non-finite numbers are encoded as null.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v := r.values[k]
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = nil
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object. Key order follows NewRecord.
func (r *Record) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: record must be a JSON object", ErrInvalidArgument)
	}
	*r = NewRecord(m)
	return nil
}

func normalize(v any) any {
	switch x := v.(type) {
	case nil, float64, string, bool:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// FormatValue renders a value the way categorical encoders key their categories.
func FormatValue(v any) string {
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
