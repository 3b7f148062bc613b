// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package diary

import (
	"strconv"
	"time"
)

// stoppedLayouts are the timestamp forms accepted from the "stopped"
// field when it is not a Unix epoch.
var stoppedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const dateFormat = "2006-01-02"

// WatchDate normalizes an event's stopped timestamp to a YYYY-MM-DD
// date in UTC. An all-digit token is read as Unix epoch seconds,
// anything else is tried against the known timestamp layouts, and any
// value that cannot be read falls back to now. Never fails: every
// event gets a valid watch date.
func WatchDate(token string, now time.Time) string {
	if token == "" {
		return now.UTC().Format(dateFormat)
	}

	if isDigits(token) {
		if secs, err := strconv.ParseInt(token, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC().Format(dateFormat)
		}
	}

	for _, layout := range stoppedLayouts {
		if d, err := time.Parse(layout, token); err == nil {
			return d.UTC().Format(dateFormat)
		}
	}

	return now.UTC().Format(dateFormat)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
