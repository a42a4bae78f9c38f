// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/houseoracle/internal/property"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

type limitsRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=10"`
	Limit int    `json:"limit" validate:"min=1,max=100"`
	Mode  string `json:"mode" validate:"omitempty,oneof=fast slow"`
}

func TestValidateStruct_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input limitsRequest
		want  string
	}{
		{"valid", limitsRequest{Name: "ok", Limit: 5}, ""},
		{"required", limitsRequest{Limit: 5}, "name is required"},
		{"string min", limitsRequest{Name: "a", Limit: 5}, "name must be at least 2 characters"},
		{"number max", limitsRequest{Name: "ok", Limit: 500}, "limit must be at most 100"},
		{"oneof", limitsRequest{Name: "ok", Limit: 5, Mode: "medium"}, "mode must be one of: fast slow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(&tt.input)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q", tt.want)
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestRequestValidationError_Joins(t *testing.T) {
	t.Parallel()

	err := ValidateStruct(&limitsRequest{})
	if err == nil {
		t.Fatal("expected errors")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2", len(err.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("multiple messages should be joined: %q", err.Error())
	}
	first := err.Errors()[0]
	if first.Field() != "name" || first.Tag() != "required" {
		t.Errorf("first error = %s/%s, want name/required", first.Field(), first.Tag())
	}

	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("empty error should have a generic message")
	}
}

func record(m map[string]any) property.Record {
	return property.NewRecord(m)
}

func TestValidateProperty(t *testing.T) {
	t.Parallel()

	valid := map[string]any{
		"area": 10.0, "bedrooms": 3.0, "baths": 2.0,
		"location": "DHA Defence", "property_type": "house",
	}
	with := func(key string, v any) map[string]any {
		m := make(map[string]any, len(valid))
		for k, val := range valid {
			m[k] = val
		}
		if v == nil {
			delete(m, key)
		} else {
			m[key] = v
		}
		return m
	}

	tests := []struct {
		name      string
		in        map[string]any
		wantField string
		wantTag   string
	}{
		{"valid", valid, "", ""},
		{"integer json numbers", with("area", 12), "", ""},
		{"extra attributes pass", with("furnished", true), "", ""},
		{"no property type", with("property_type", nil), "", ""},
		{"missing area", with("area", nil), "area", "required"},
		{"zero area", with("area", 0.0), "area", "gt"},
		{"negative baths", with("baths", -1.0), "baths", "gte"},
		{"string area", with("area", "10"), "area", "number"},
		{"numeric location", with("location", 5.0), "location", "string"},
		{"no rooms", map[string]any{"area": 5.0, "bedrooms": 0.0, "baths": 0.0}, "bedrooms", "rooms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateProperty(record(tt.in))
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %s/%s error", tt.wantField, tt.wantTag)
			}
			got := err.Errors()[0]
			if got.Field() != tt.wantField || got.Tag() != tt.wantTag {
				t.Errorf("error = %s/%s (%q), want %s/%s", got.Field(), got.Tag(), got.Error(), tt.wantField, tt.wantTag)
			}
		})
	}
}
