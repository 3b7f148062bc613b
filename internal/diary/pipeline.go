// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

// Package diary turns accepted playback events into Letterboxd diary
// entries: classification, rating and date conversion, reference URI
// resolution, and the handoff to the ledger.
package diary

import (
	"time"

	"github.com/reelog/reelog/internal/ledger"
	"github.com/reelog/reelog/internal/models"
)

// Outcome is the result of processing one classified event. Exactly
// one of Logged and SkipReason is meaningful: a deduped event carries
// SkipReason "dedupe window", a logged one carries the written entry.
type Outcome struct {
	Logged     bool
	SkipReason string
	Entry      *models.DiaryEntry
}

// Pipeline converts accepted events into ledger rows.
type Pipeline struct {
	store      *ledger.Store
	windowDays int
	now        func() time.Time
}

// NewPipeline creates a Pipeline writing to store with the given
// dedupe window in days.
func NewPipeline(store *ledger.Store, windowDays int) *Pipeline {
	return &Pipeline{
		store:      store,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Process builds the diary entry for an already-accepted event and
// records it. The dedupe and rewatch scans match on the raw title and
// year strings from the event; the stored Year is normalized to digits
// or left empty. Returns an error only on storage faults.
func (p *Pipeline) Process(ev *models.PlaybackEvent) (Outcome, error) {
	key := ledger.Key{
		Title: ev.DisplayTitle(),
		Year:  ev.YearString(),
	}

	var rating string
	if ev.UserRating.Valid {
		rating = StarRating(ev.UserRating.Value)
	}

	entry := &models.DiaryEntry{
		Date:   WatchDate(string(ev.Stopped), p.now()),
		Name:   key.Title,
		Year:   entryYear(ev.YearString()),
		URI:    ReferenceURI(ev.IMDBID, string(ev.TMDBID)),
		Rating: rating,
	}

	deduped, err := p.store.Record(entry, key, p.windowDays)
	if err != nil {
		return Outcome{}, err
	}
	if deduped {
		return Outcome{SkipReason: "dedupe window"}, nil
	}
	return Outcome{Logged: true, Entry: entry}, nil
}

// entryYear returns the year in stored form: the raw string when it is
// all digits, "" otherwise.
func entryYear(raw string) string {
	if isDigits(raw) {
		return raw
	}
	return ""
}
