// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package diary

import (
	"math"
	"strconv"
)

// StarRating converts a media-server rating on the 0-10 scale to the
// Letterboxd half-star scale, clamped to [0.5, 5.0]. Whole stars render
// without a decimal ("4"), half stars with one ("4.5").
func StarRating(r10 float64) string {
	stars := math.Round(r10) / 2
	if stars < 0.5 {
		stars = 0.5
	}
	if stars > 5.0 {
		stars = 5.0
	}
	if stars == math.Trunc(stars) {
		return strconv.Itoa(int(stars))
	}
	return strconv.FormatFloat(stars, 'f', 1, 64)
}
