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

// Health reports overall service health: degraded when the ledger
// location cannot be created or written.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writable := h.store.Ensure() == nil

	status := "healthy"
	if !writable {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:         status,
			Version:        Version,
			LedgerPath:     h.store.Path(),
			LedgerWritable: writable,
			Uptime:         time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive is the liveness probe: 200 whenever the process is up,
// regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady is the readiness probe: 200 only when the ledger file
// exists or can be created, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ensure(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Ledger is not writable", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready":       true,
			"ledger_path": h.store.Path(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
