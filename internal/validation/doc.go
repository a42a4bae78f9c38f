// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

// Package validation provides struct validation using go-playground/validator v10.
//
// The package holds a thread-safe singleton validator that reports fields by
// their JSON names and translates failures into short messages such as
// "area must be greater than 0".
//
// # Property Payloads
//
// ValidateProperty checks the attributes a price prediction depends on:
//
//   - area: required number, greater than 0 (Marla)
//   - bedrooms, baths: required numbers between 0 and 100
//   - bedrooms + baths: at least one room
//   - location, property_type: strings when present
//
// Other attributes are left to the models. A present value of the wrong JSON
// type is reported without running the struct rules.
//
// # Usage
//
//	if verr := validation.ValidateProperty(rec); verr != nil {
//	    respondError(w, http.StatusBadRequest, "Invalid input", verr.Error())
//	    return
//	}
package validation
