// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package diary

import (
	"fmt"
	"strings"

	"github.com/reelog/reelog/internal/models"
)

// movieMediaTypes are the media_type values that qualify for the diary.
// Plex reports direct-file libraries as "video".
var movieMediaTypes = map[string]struct{}{
	"movie": {},
	"video": {},
}

// Verdict is the outcome of classifying one playback event. When
// Accept is false, Reason holds the skip reason reported back to the
// webhook caller.
type Verdict struct {
	Accept bool
	Reason string
}

// Classify decides whether a playback event qualifies for a diary
// entry: it must be a playback_stopped event, for a movie, watched to
// at least minPercent completion. Checks run in that order and the
// first failure wins.
func Classify(ev *models.PlaybackEvent, minPercent float64) Verdict {
	if !strings.EqualFold(ev.Event, "playback_stopped") {
		return Verdict{Reason: "not playback_stopped"}
	}
	if _, ok := movieMediaTypes[strings.ToLower(ev.MediaType)]; !ok {
		return Verdict{Reason: "not a movie"}
	}
	if pct := ev.PercentWatched(); pct < minPercent {
		return Verdict{Reason: fmt.Sprintf("percent %g < %g", pct, minPercent)}
	}
	return Verdict{Accept: true}
}
