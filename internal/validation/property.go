// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/houseoracle/internal/property"
)

// PropertyPayload is the typed view of the attributes a prediction needs.
// Attributes not listed here pass through to the models unchecked.
type PropertyPayload struct {
	Area         *float64 `json:"area" validate:"required,gt=0"`
	Bedrooms     *float64 `json:"bedrooms" validate:"required,gte=0,lte=100"`
	Baths        *float64 `json:"baths" validate:"required,gte=0,lte=100"`
	Location     string   `json:"location" validate:"max=200"`
	PropertyType string   `json:"property_type" validate:"max=100"`
}

// validateRooms rejects payloads with no rooms at all; the area-to-room
// ratio is undefined for them.
func validateRooms(sl validator.StructLevel) {
	p, ok := sl.Current().Interface().(PropertyPayload)
	if !ok || p.Bedrooms == nil || p.Baths == nil {
		return
	}
	if *p.Bedrooms+*p.Baths <= 0 {
		sl.ReportError(*p.Bedrooms, "bedrooms", "Bedrooms", "rooms", "")
	}
}

// ValidateProperty checks the attributes of a request record. Present values
// of the wrong JSON type are reported before struct validation runs.
func ValidateProperty(rec property.Record) *RequestValidationError {
	var (
		p        PropertyPayload
		typeErrs []ValidationError
	)

	number := func(field string) *float64 {
		v, ok := rec.Get(field)
		if !ok || v == nil {
			return nil
		}
		f, ok := v.(float64)
		if !ok {
			typeErrs = append(typeErrs, typeError(field, "number", v))
			return nil
		}
		return &f
	}
	text := func(field string) string {
		v, ok := rec.Get(field)
		if !ok || v == nil {
			return ""
		}
		s, ok := v.(string)
		if !ok {
			typeErrs = append(typeErrs, typeError(field, "string", v))
		}
		return s
	}

	p.Area = number(property.FieldArea)
	p.Bedrooms = number(property.FieldBedrooms)
	p.Baths = number(property.FieldBaths)
	p.Location = text(property.FieldLocation)
	p.PropertyType = text(property.FieldPropertyType)

	if len(typeErrs) > 0 {
		return &RequestValidationError{errors: typeErrs}
	}
	return ValidateStruct(p)
}

func typeError(field, want string, v any) ValidationError {
	return ValidationError{
		field:   field,
		tag:     want,
		value:   v,
		message: fmt.Sprintf("%s must be a %s", field, want),
	}
}
