// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Package recommend selects comparable listings for a priced property.

# Pipeline

For a purpose's recommender artifact the engine:

 1. transforms the query record (with its predicted price) through the
    artifact preprocessor and finds the K nearest catalog rows;
 2. restricts those rows to the artifact feature names and transforms them
    through the same preprocessor;
 3. returns the K rows unchanged when K is below the cluster count;
 4. otherwise runs seeded k-means and keeps, per cluster in label order,
    the member nearest its centroid, converting area from Kanal to Marla.

# Degraded Mode

Any error or panic in the pipeline is logged as a degraded recommendation
and replaced by a uniformly random, unseeded sample of catalog rows in
stored units. A per-purpose circuit breaker (sony/gobreaker) skips the
pipeline entirely after repeated failures until its timeout elapses.

# Thread Safety

Engine is safe for concurrent use. Artifacts are read-only; the fallback
random source is mutex-guarded.
*/
package recommend
