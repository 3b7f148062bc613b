// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package models

import "time"

// WebhookResult is the response body for the Tautulli webhook endpoint.
// Exactly one of Skipped, Logged, or Error is set alongside OK:
//
//	{"ok": true,  "skipped": "dedupe window"}
//	{"ok": true,  "logged": {"Date": ..., "Name": ...}}
//	{"ok": false, "error": "appending diary entry: ..."}
type WebhookResult struct {
	OK      bool        `json:"ok"`
	Skipped string      `json:"skipped,omitempty"`
	Logged  *DiaryEntry `json:"logged,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// APIResponse is the envelope for the read-only diary API.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing and pagination details.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	Count       int       `json:"count,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms"`
}

// APIError describes a failed API request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthStatus reports overall service health.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	LedgerPath     string  `json:"ledger_path"`
	LedgerWritable bool    `json:"ledger_writable"`
	Uptime         float64 `json:"uptime"`
}

// DiaryStats summarizes the ledger for the stats endpoint.
type DiaryStats struct {
	Entries   int    `json:"entries"`
	Films     int    `json:"films"`
	Rewatches int    `json:"rewatches"`
	Rated     int    `json:"rated"`
	FirstDate string `json:"first_date,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
}
