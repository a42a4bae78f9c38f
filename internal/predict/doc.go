// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Package predict estimates rent and sale prices.

A request record arrives with area in Marla. The predictor converts it to
Kanal, derives log1p area, location tier and area-to-room ratio, and runs
the purpose's fitted pipeline. Model output is expressed in units of the
purpose's price scale (100,000 for rent, 10,000,000 for sale) and is
rounded to a whole currency amount.

Errors wrap property.ErrInvalidArgument for bad input and
property.ErrArtifactLoad when the purpose's model or the tier map was not
loaded. Inference is never retried.
*/
package predict
