// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

/*
Command houseoracle-artifacts manages the versioned model artifact store the
server loads at startup.

The training job exports each model as a YAML or JSON manifest. import
validates a manifest and saves it as the next version of its artifact; the
server always loads the newest version unless ARTIFACTS_VERSION pins one.

	houseoracle-artifacts import -dir artifacts/models manifests/*.yaml
	houseoracle-artifacts list -dir artifacts/models
	houseoracle-artifacts prune -dir artifacts/models -keep 2

Exit status is 0 on success, 1 when a command fails and 2 on bad usage.
*/
package main
