// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package api

import (
	"crypto/subtle"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/reelog/reelog/internal/diary"
	"github.com/reelog/reelog/internal/logging"
	"github.com/reelog/reelog/internal/metrics"
	"github.com/reelog/reelog/internal/models"
)

// maxWebhookBody caps webhook payload size. Tautulli notification
// bodies are small; anything past this is not a real event.
const maxWebhookBody = 1 << 20

// SecretHeader carries the shared webhook secret on each delivery.
const SecretHeader = "X-Webhook-Secret"

// TautulliWebhook ingests one Tautulli notification. The only non-200
// status is 401 on a shared-secret mismatch; every other path answers
// 200 so Tautulli never retries or disables the notifier:
//
//	{"ok": true,  "skipped": "<reason>"}   filtered or deduped
//	{"ok": true,  "logged": {...}}         entry appended
//	{"ok": false, "error": "..."}          storage fault, nothing written
func (h *Handler) TautulliWebhook(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		metrics.RecordWebhookOutcome("unauthorized")
		logging.Warn().Str("remote_addr", r.RemoteAddr).Msg("Webhook rejected: secret mismatch")
		respondWebhook(w, http.StatusUnauthorized, &models.WebhookResult{OK: false, Error: "unauthorized"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		body = nil
	}

	// Tautulli templates produce unreliable JSON; a body that cannot be
	// decoded is treated as an empty event and filtered, never erred.
	var event models.PlaybackEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logging.Warn().Str("error", sanitizeLogValue(err.Error())).Msg("Webhook body is not valid JSON")
		event = models.PlaybackEvent{}
	}

	verdict := diary.Classify(&event, h.config.Webhook.MinPercent)
	if !verdict.Accept {
		metrics.RecordWebhookOutcome("filtered")
		logging.Debug().
			Str("title", sanitizeLogValue(event.DisplayTitle())).
			Str("reason", verdict.Reason).
			Msg("Webhook event skipped")
		respondWebhook(w, http.StatusOK, &models.WebhookResult{OK: true, Skipped: verdict.Reason})
		return
	}

	outcome, err := h.pipeline.Process(&event)
	if err != nil {
		metrics.RecordWebhookOutcome("failed")
		logging.Err(err).
			Str("title", sanitizeLogValue(event.DisplayTitle())).
			Msg("Failed to record diary entry")
		respondWebhook(w, http.StatusOK, &models.WebhookResult{OK: false, Error: err.Error()})
		return
	}

	if !outcome.Logged {
		metrics.RecordWebhookOutcome("deduped")
		logging.Info().
			Str("title", sanitizeLogValue(event.DisplayTitle())).
			Str("year", sanitizeLogValue(event.YearString())).
			Msg("Webhook event suppressed by dedupe window")
		respondWebhook(w, http.StatusOK, &models.WebhookResult{OK: true, Skipped: outcome.SkipReason})
		return
	}

	metrics.RecordWebhookOutcome("logged")
	logging.Info().
		Str("title", sanitizeLogValue(outcome.Entry.Name)).
		Str("year", sanitizeLogValue(outcome.Entry.Year)).
		Str("date", outcome.Entry.Date).
		Bool("rewatch", outcome.Entry.Rewatch == "Yes").
		Msg("Diary entry appended")
	respondWebhook(w, http.StatusOK, &models.WebhookResult{OK: true, Logged: outcome.Entry})
}

// authorized checks the shared webhook secret. An empty configured
// secret disables the check. Comparison is constant time.
func (h *Handler) authorized(r *http.Request) bool {
	secret := h.config.Webhook.Secret
	if secret == "" {
		return true
	}
	provided := r.Header.Get(SecretHeader)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1
}

// respondWebhook writes the bare webhook result body. The webhook
// contract predates the APIResponse envelope and stays unwrapped.
func respondWebhook(w http.ResponseWriter, status int, result *models.WebhookResult) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(result)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal webhook response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write webhook response")
	}
}
