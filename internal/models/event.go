// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package models

import (
	"strings"

	"github.com/goccy/go-json"
)

// PlaybackEvent is a decoded Tautulli webhook payload.
//
// Tautulli renders webhook bodies through user-editable notification
// templates, so scalar fields arrive as JSON numbers or strings
// depending on the template. The Flex types below absorb both forms,
// and any value they cannot read decodes as absent rather than
// failing the request: a malformed field must never cause an event to
// be rejected outright.
type PlaybackEvent struct {
	Event           string     `json:"event"`
	MediaType       string     `json:"media_type"`
	PercentComplete FlexFloat  `json:"percent_complete"`
	Progress        FlexFloat  `json:"progress"`
	Title           string     `json:"title"`
	FullTitle       string     `json:"full_title"`
	Year            FlexString `json:"year"`
	IMDBID          string     `json:"imdb_id"`
	TMDBID          FlexString `json:"tmdb_id"`
	UserRating      FlexFloat  `json:"user_rating"`
	Stopped         FlexString `json:"stopped"`
}

// PercentWatched returns the playback completion percentage:
// percent_complete if present, else progress, else 0.
func (e *PlaybackEvent) PercentWatched() float64 {
	if e.PercentComplete.Valid {
		return e.PercentComplete.Value
	}
	if e.Progress.Valid {
		return e.Progress.Value
	}
	return 0
}

// DisplayTitle returns the best available title for the event.
func (e *PlaybackEvent) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	if e.FullTitle != "" {
		return e.FullTitle
	}
	return "Unknown"
}

// YearString returns the year as delivered, or "" when absent. This is
// the form used for ledger matching; see DiaryEntry for the stored form.
func (e *PlaybackEvent) YearString() string {
	return string(e.Year)
}

// FlexString is a string that also accepts JSON numbers and null.
// Values it cannot represent decode as "".
type FlexString string

// UnmarshalJSON implements lenient decoding; it never returns an error.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(strings.TrimSpace(str))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}
	*s = ""
	return nil
}

// FlexFloat is an optional float that accepts JSON numbers and numeric
// strings. Absent, null, and unparseable values all decode as invalid.
type FlexFloat struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements lenient decoding; it never returns an error.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	f.Value, f.Valid = 0, false
	if string(data) == "null" {
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		f.Value, f.Valid = num, true
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		var parsed json.Number = json.Number(strings.TrimSpace(str))
		if v, err := parsed.Float64(); err == nil {
			f.Value, f.Valid = v, true
		}
	}
	return nil
}

// MarshalJSON renders the value, or null when absent.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
