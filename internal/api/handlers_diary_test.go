// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/reelog/reelog/internal/models"
)

// diaryResponse mirrors the APIResponse envelope with typed Data.
type diaryResponse struct {
	Status   string              `json:"status"`
	Data     []models.DiaryEntry `json:"data"`
	Metadata models.Metadata     `json:"metadata"`
	Error    *models.APIError    `json:"error"`
}

func seedDiary(t *testing.T, env *testEnv) {
	t.Helper()
	for _, payload := range []string{heatPayload, ranPayload} {
		if rec := env.postWebhook(payload, ""); rec.Code != http.StatusOK {
			t.Fatalf("seeding delivery failed: %d %s", rec.Code, rec.Body.String())
		}
	}
}

func TestDiaryListsEntries(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	seedDiary(t, env)

	rec := env.request(http.MethodGet, "/api/v1/diary", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var resp diaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if resp.Metadata.Count != 2 || len(resp.Data) != 2 {
		t.Fatalf("count = %d, entries = %d, want 2/2", resp.Metadata.Count, len(resp.Data))
	}
	if resp.Data[0].Name != "Heat" || resp.Data[1].Name != "Ran" {
		t.Errorf("entries out of append order: %q, %q", resp.Data[0].Name, resp.Data[1].Name)
	}
}

func TestDiaryPagination(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	seedDiary(t, env)

	rec := env.request(http.MethodGet, "/api/v1/diary?limit=1&offset=1", "", nil)
	var resp diaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Name != "Ran" {
		t.Errorf("page = %+v, want single Ran entry", resp.Data)
	}

	rec = env.request(http.MethodGet, "/api/v1/diary?offset=10", "", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("offset past end returned %d entries", len(resp.Data))
	}
}

func TestDiaryValidatesParams(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	for _, query := range []string{"limit=0", "limit=5000", "offset=-1"} {
		rec := env.request(http.MethodGet, "/api/v1/diary?"+query, "", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestDiaryStatsEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	seedDiary(t, env)
	// A second Heat watch outside the window becomes a rewatch row.
	if err := env.store.Append(&models.DiaryEntry{
		Date: "2023-11-15", Name: "Heat", Year: "1995", Rewatch: "Yes",
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	rec := env.request(http.MethodGet, "/api/v1/diary/stats", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Status string            `json:"status"`
		Data   models.DiaryStats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	stats := resp.Data
	if stats.Entries != 3 {
		t.Errorf("Entries = %d, want 3", stats.Entries)
	}
	if stats.Films != 2 {
		t.Errorf("Films = %d, want 2", stats.Films)
	}
	if stats.Rewatches != 1 {
		t.Errorf("Rewatches = %d, want 1", stats.Rewatches)
	}
	if stats.Rated != 2 {
		t.Errorf("Rated = %d, want 2", stats.Rated)
	}
	if stats.FirstDate != "2023-11-14" || stats.LastDate != "2023-11-16" {
		t.Errorf("date range = %q..%q", stats.FirstDate, stats.LastDate)
	}
}

func TestExportDiaryCSV(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	seedDiary(t, env)

	rec := env.request(http.MethodGet, "/api/v1/export/diary.csv", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "letterboxd_diary.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("export lines = %d, want header + 2 rows", len(lines))
	}
	if lines[0] != "Date,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Review" {
		t.Errorf("header = %q", lines[0])
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")

	rec := env.request(http.MethodGet, "/api/v1/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want 200", rec.Code)
	}

	rec = env.request(http.MethodGet, "/api/v1/health/ready", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}

	rec = env.request(http.MethodGet, "/api/v1/health/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200", rec.Code)
	}
	var resp struct {
		Data models.HealthStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.Status != "healthy" || !resp.Data.LedgerWritable {
		t.Errorf("health = %+v, want healthy/writable", resp.Data)
	}
	if resp.Data.Version != Version {
		t.Errorf("version = %q, want %q", resp.Data.Version, Version)
	}
}

func TestHealthReadyFailsOnUnwritableLedger(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("creating blocker: %v", err)
	}

	env := newTestEnvWithPath(t, "", filepath.Join(blocker, "diary.csv"))
	rec := env.request(http.MethodGet, "/api/v1/health/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, "")
	rec := env.request(http.MethodGet, "/api/v1/health/live", "", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	rec = env.request(http.MethodGet, "/api/v1/health/live", "", map[string]string{"X-Request-ID": "upstream-id"})
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream-id", got)
	}
}
