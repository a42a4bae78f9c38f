// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Package api provides the HTTP surface of HouseOracle using the Chi router.

Endpoints:

	GET  /              plain-text welcome banner
	POST /predict       price prediction plus up to three recommendations
	GET  /health/live   liveness probe
	GET  /health/ready  readiness probe, 503 until all artifacts are loaded
	GET  /metrics       Prometheus metrics

# Predict

The request body is a JSON object of property attributes plus a purpose of
"rent" or "sale" (any case). Area is in Marla:

	{"area": 10, "bedrooms": 4, "baths": 4, "location": "DHA Defence",
	 "property_type": "house", "purpose": "sale"}

A successful response carries the rounded price and catalog listings with
price placed immediately after property_type:

	{"predicted_price": 52000000, "recommendations": [{...}, {...}, {...}]}

Errors use a single shape, {"error": "...", "details": "..."}:

  - 400 Missing required fields: empty, malformed or non-object body, or no purpose
  - 400 Invalid purpose: purpose other than rent or sale
  - 400 Invalid input: attribute validation failed
  - 429 Too many requests: per-IP rate limit on /predict
  - 500 Prediction failed: model or artifact error

# Middleware

Every route gets request IDs, real-IP extraction, request logging, panic
recovery, CORS and Prometheus instrumentation. /predict is additionally
rate limited with go-chi/httprate and bounded by a request timeout.
*/
package api
