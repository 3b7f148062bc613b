// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reelog/reelog/internal/config"
	"github.com/reelog/reelog/internal/diary"
	"github.com/reelog/reelog/internal/ledger"
)

// testClock pins dedupe decisions: entries from the heat payload are
// dated 2023-11-14, one day inside the two-day window.
var testClock = time.Date(2023, 11, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router http.Handler
	store  *ledger.Store
	path   string
}

func newTestEnv(t *testing.T, secret string) *testEnv {
	t.Helper()
	return newTestEnvWithPath(t, secret, filepath.Join(t.TempDir(), "diary.csv"))
}

func newTestEnvWithPath(t *testing.T, secret, path string) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:    "127.0.0.1",
			Port:    8089,
			Timeout: 30 * time.Second,
		},
		Webhook: config.WebhookConfig{
			Secret:     secret,
			MinPercent: 85,
		},
		Ledger: config.LedgerConfig{
			Path:       path,
			DedupeDays: 2,
		},
		Security: config.SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "json",
		},
	}

	store := ledger.New(path)
	store.SetClock(func() time.Time { return testClock })

	pipeline := diary.NewPipeline(store, cfg.Ledger.DedupeDays)
	pipeline.SetClock(func() time.Time { return testClock })

	handler := NewHandler(cfg, pipeline, store)
	router := NewRouter(handler, NewChiMiddlewareFromConfig(cfg))

	return &testEnv{
		router: router.Setup(),
		store:  store,
		path:   path,
	}
}

func (e *testEnv) request(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) postWebhook(body, secret string) *httptest.ResponseRecorder {
	headers := map[string]string{"Content-Type": "application/json"}
	if secret != "" {
		headers[SecretHeader] = secret
	}
	return e.request(http.MethodPost, "/webhook/tautulli", body, headers)
}

const heatPayload = `{
	"event": "playback_stopped",
	"media_type": "movie",
	"title": "Heat",
	"year": 1995,
	"imdb_id": "113277",
	"user_rating": 9.0,
	"percent_complete": 97,
	"stopped": "1700000000"
}`

const ranPayload = `{
	"event": "playback_stopped",
	"media_type": "movie",
	"title": "Ran",
	"year": "1985",
	"tmdb_id": 11645,
	"user_rating": 10,
	"percent_complete": 99,
	"stopped": "1700100000"
}`
