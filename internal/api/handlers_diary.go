// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package api

import (
	"net/http"
	"time"

	"github.com/reelog/reelog/internal/models"
)

// diaryRequest holds validated query parameters for the diary listing.
type diaryRequest struct {
	Limit  int `validate:"min=1,max=1000"`
	Offset int `validate:"min=0"`
}

// Diary lists ledger entries in append order with limit/offset
// pagination.
func (h *Handler) Diary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := diaryRequest{
		Limit:  getIntParam(r, "limit", 100),
		Offset: getIntParam(r, "offset", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	entries, err := h.store.Entries()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "LEDGER_READ_ERROR", "Failed to read diary ledger", err)
		return
	}

	page := paginate(entries, req.Offset, req.Limit)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   page,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			Count:       len(page),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// DiaryStats summarizes the ledger: totals, distinct films, rewatch
// and rated counts, and the date range covered.
func (h *Handler) DiaryStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	entries, err := h.store.Entries()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "LEDGER_READ_ERROR", "Failed to read diary ledger", err)
		return
	}

	stats := buildDiaryStats(entries)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   stats,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			Count:       stats.Entries,
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// ExportDiary streams the raw ledger CSV, ready for Letterboxd import.
func (h *Handler) ExportDiary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="letterboxd_diary.csv"`)

	if _, err := h.store.Export(w); err != nil {
		// Headers may already be sent; the truncated body is the best
		// signal left to give the client.
		respondError(w, http.StatusInternalServerError, "LEDGER_EXPORT_ERROR", "Failed to export diary ledger", err)
	}
}

func paginate(entries []models.DiaryEntry, offset, limit int) []models.DiaryEntry {
	if offset >= len(entries) {
		return []models.DiaryEntry{}
	}
	end := offset + limit
	if end > len(entries) {
		end = len(entries)
	}
	return entries[offset:end]
}

func buildDiaryStats(entries []models.DiaryEntry) models.DiaryStats {
	stats := models.DiaryStats{Entries: len(entries)}

	films := make(map[[2]string]struct{}, len(entries))
	for _, e := range entries {
		films[[2]string{e.Name, e.Year}] = struct{}{}
		if e.Rewatch == "Yes" {
			stats.Rewatches++
		}
		if e.Rating != "" {
			stats.Rated++
		}
		if stats.FirstDate == "" || e.Date < stats.FirstDate {
			stats.FirstDate = e.Date
		}
		if e.Date > stats.LastDate {
			stats.LastDate = e.Date
		}
	}
	stats.Films = len(films)

	return stats
}
