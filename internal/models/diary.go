// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package models

// DiaryHeader is the exact Letterboxd import header, in column order.
// The ledger file must start with this row and every data row carries
// exactly these fields.
var DiaryHeader = []string{"Date", "Name", "Year", "Letterboxd URI", "Rating", "Rewatch", "Tags", "Review"}

// DiaryEntry is one row of the diary ledger. All fields are the string
// forms written to the CSV; JSON keys are the CSV column names so API
// responses mirror the file exactly.
type DiaryEntry struct {
	// Date is the watch date, always a valid YYYY-MM-DD string.
	Date string `json:"Date"`

	// Name is the film title.
	Name string `json:"Name"`

	// Year is the release year as digits, or "" when unknown.
	Year string `json:"Year"`

	// URI is the canonical Letterboxd/TMDB reference, or "".
	URI string `json:"Letterboxd URI"`

	// Rating is a half-star value "0.5".."5", or "" when unrated.
	Rating string `json:"Rating"`

	// Rewatch is "Yes" when the title/year has any prior ledger entry,
	// "" otherwise.
	Rewatch string `json:"Rewatch"`

	Tags   string `json:"Tags"`
	Review string `json:"Review"`
}

// Record returns the CSV fields in DiaryHeader order.
func (e *DiaryEntry) Record() []string {
	return []string{e.Date, e.Name, e.Year, e.URI, e.Rating, e.Rewatch, e.Tags, e.Review}
}

// DiaryEntryFromRecord rebuilds an entry from a CSV record. Short
// records are tolerated; missing trailing fields stay empty.
func DiaryEntryFromRecord(record []string) DiaryEntry {
	var e DiaryEntry
	fields := []*string{&e.Date, &e.Name, &e.Year, &e.URI, &e.Rating, &e.Rewatch, &e.Tags, &e.Review}
	for i, f := range fields {
		if i < len(record) {
			*f = record[i]
		}
	}
	return e
}
