// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package diary

import "testing"

func TestStarRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{"whole star", 8.0, "4"},
		{"half star", 7.0, "3.5"},
		{"nine maps to four and a half", 9.0, "4.5"},
		{"maximum", 10.0, "5"},
		{"zero clamps to minimum", 0.0, "0.5"},
		{"one rounds to minimum", 1.0, "0.5"},
		{"two is one star", 2.0, "1"},
		{"above scale clamps to five", 11.0, "5"},
		{"negative clamps to minimum", -3.0, "0.5"},
		{"rounds down to whole", 8.4, "4"},
		{"rounds up to half", 8.6, "4.5"},
		{"midpoint rounds away from zero", 8.5, "4.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StarRating(tt.input); got != tt.want {
				t.Errorf("StarRating(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
