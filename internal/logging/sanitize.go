// HouseOracle - Property Price Prediction and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/houseoracle

package logging

import "strings"

// maxLogValueLen bounds user-supplied strings written to logs.
const maxLogValueLen = 200

// SanitizeValue strips control characters that would allow log line
// injection and truncates the value to a bounded length.
func SanitizeValue(value string) string {
	var b strings.Builder
	b.Grow(min(len(value), maxLogValueLen))
	for _, r := range value {
		if b.Len() >= maxLogValueLen {
			return b.String() + "..."
		}
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(' ')
			continue
		}
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
