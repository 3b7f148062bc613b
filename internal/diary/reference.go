// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package diary

import "strings"

// ReferenceURI builds the Letterboxd URI column value for an entry.
// IMDb wins over TMDB when both ids are present; Letterboxd resolves
// the /imdb/ redirect form to the film page on import. Returns "" when
// neither id is available.
func ReferenceURI(imdbID, tmdbID string) string {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID != "" {
		if !strings.HasPrefix(imdbID, "tt") {
			imdbID = "tt" + imdbID
		}
		return "https://letterboxd.com/imdb/" + imdbID + "/"
	}

	tmdbID = strings.TrimSpace(tmdbID)
	if tmdbID != "" {
		return "https://www.themoviedb.org/movie/" + tmdbID
	}
	return ""
}
