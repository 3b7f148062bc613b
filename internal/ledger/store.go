// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

// Package ledger owns the diary CSV file: header enforcement, appends,
// and the linear scans behind dedupe and rewatch decisions.
//
// The file is the single source of truth. The Store is its sole writer
// and serializes every mutating sequence under one mutex so that two
// concurrent webhook deliveries for the same title/year cannot both
// pass the dedupe check before either appends.
//
// Matching is by Name and Year string equality only; external ids are
// not consulted, so two films sharing a title and release year dedupe
// against each other.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reelog/reelog/internal/metrics"
	"github.com/reelog/reelog/internal/models"
)

// dateLayouts are the formats accepted when reading Date fields back
// out of the ledger. Rows written by Reelog always use the first form.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Store provides serialized access to the diary ledger file.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a Store for the ledger at path. The file itself is
// created lazily on first use.
func New(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return s.path
}

// SetClock overrides the time source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Ensure creates the ledger file with its header row if it does not
// exist yet. Idempotent and safe to call on every request.
func (s *Store) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked()
}

func (s *Store) ensureLocked() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return fmt.Errorf("creating ledger file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.DiaryHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger header: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger file: %w", err)
	}
	return nil
}

// Append writes one diary entry to the end of the ledger, creating the
// file first if needed. The row is fully written and synced before
// Append returns nil; there is no partial-append state.
func (s *Store) Append(entry *models.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(entry)
}

func (s *Store) appendLocked(entry *models.DiaryEntry) error {
	if err := s.ensureLocked(); err != nil {
		metrics.LedgerAppendErrors.Inc()
		return err
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		metrics.LedgerAppendErrors.Inc()
		return fmt.Errorf("opening ledger for append: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(entry.Record()); err != nil {
		f.Close()
		metrics.LedgerAppendErrors.Inc()
		return fmt.Errorf("writing diary entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		metrics.LedgerAppendErrors.Inc()
		return fmt.Errorf("writing diary entry: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		metrics.LedgerAppendErrors.Inc()
		return fmt.Errorf("syncing ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		metrics.LedgerAppendErrors.Inc()
		return fmt.Errorf("closing ledger: %w", err)
	}

	metrics.LedgerAppendsTotal.Inc()
	return nil
}

// RecentlyLogged reports whether an entry with the given title and
// year (compared as strings, "" meaning no year) was appended with a
// Date inside the trailing window. Rows with unparseable dates are
// skipped, not errors. A missing ledger file means no matches.
func (s *Store) RecentlyLogged(title, year string, windowDays int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentlyLoggedLocked(title, year, windowDays)
}

func (s *Store) recentlyLoggedLocked(title, year string, windowDays int) (bool, error) {
	start := time.Now()
	defer func() { metrics.RecordLedgerScan("dedupe", time.Since(start)) }()

	cutoff := s.now().UTC().Add(-time.Duration(windowDays) * 24 * time.Hour)

	found := false
	err := s.scan(func(entry models.DiaryEntry) bool {
		if entry.Name != title || entry.Year != year {
			return true
		}
		d, ok := parseEntryDate(entry.Date)
		if !ok {
			return true
		}
		if !d.Before(cutoff) {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// HasPrior reports whether any entry for the title/year exists in the
// ledger, regardless of date. Used to set the Rewatch flag; never a
// dedupe gate. A missing ledger file means no prior occurrence.
func (s *Store) HasPrior(title, year string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPriorLocked(title, year)
}

func (s *Store) hasPriorLocked(title, year string) (bool, error) {
	start := time.Now()
	defer func() { metrics.RecordLedgerScan("rewatch", time.Since(start)) }()

	found := false
	err := s.scan(func(entry models.DiaryEntry) bool {
		if entry.Name == title && entry.Year == year {
			found = true
			return false
		}
		return true
	})
	return found, err
}

// Key identifies a film for dedupe and rewatch matching. Year is the
// raw string from the event, which may differ from the normalized
// digits-only form stored in the entry.
type Key struct {
	Title string
	Year  string
}

// Record runs the full decision sequence for one candidate entry as a
// single critical section: dedupe scan, rewatch scan, append. When the
// dedupe window suppresses the entry, Record returns deduped=true and
// nothing is written. Otherwise the entry's Rewatch flag is set from
// the prior-occurrence scan and the row is appended.
func (s *Store) Record(entry *models.DiaryEntry, key Key, windowDays int) (deduped bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent, err := s.recentlyLoggedLocked(key.Title, key.Year, windowDays)
	if err != nil {
		return false, err
	}
	if recent {
		metrics.LedgerDedupeHits.Inc()
		return true, nil
	}

	prior, err := s.hasPriorLocked(key.Title, key.Year)
	if err != nil {
		return false, err
	}
	if prior {
		entry.Rewatch = "Yes"
	} else {
		entry.Rewatch = ""
	}

	if err := s.appendLocked(entry); err != nil {
		return false, err
	}
	return false, nil
}

// Entries reads the whole ledger back in append order. A missing file
// yields an empty slice.
func (s *Store) Entries() ([]models.DiaryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() { metrics.RecordLedgerScan("entries", time.Since(start)) }()

	entries := []models.DiaryEntry{}
	err := s.scan(func(entry models.DiaryEntry) bool {
		entries = append(entries, entry)
		return true
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Export copies the raw ledger file to w, creating the file first if
// needed so an export is always at least the header row.
func (s *Store) Export(w io.Writer) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLocked(); err != nil {
		return 0, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return 0, fmt.Errorf("opening ledger for export: %w", err)
	}
	defer f.Close()

	return io.Copy(w, f)
}

// scan reads every data row, invoking fn for each until fn returns
// false. The header row is skipped. A missing file is an empty ledger.
func (s *Store) scan(fn func(models.DiaryEntry) bool) error {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	first := true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading ledger: %w", err)
		}
		if first {
			first = false
			continue
		}
		if !fn(models.DiaryEntryFromRecord(record)) {
			return nil
		}
	}
}

// parseEntryDate parses a ledger Date field. The second return is
// false for values no accepted layout can read.
func parseEntryDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return d.UTC(), true
		}
	}
	return time.Time{}, false
}
