// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

// Package main is the entry point for the Reelog server.
//
// Reelog listens for Tautulli "playback stopped" webhook notifications
// and appends qualifying movie watches to an append-only CSV ledger in
// the Letterboxd diary import format. Ratings are converted to the
// half-star scale, IMDb/TMDB ids become canonical reference URIs,
// repeat deliveries are suppressed inside a configurable dedupe
// window, and prior watches of the same film mark the new entry as a
// rewatch.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered env/file/defaults via Koanf v2
//  2. Logging: zerolog global logger
//  3. Ledger store: the append-only diary CSV
//  4. Diary pipeline: classification and entry conversion
//  5. HTTP server: webhook, read-only diary API, health, metrics
//  6. Supervisor tree: suture-managed lifecycle with graceful shutdown
//
// # Configuration
//
// All settings come from environment variables or an optional
// config.yaml (env wins):
//
//	PORT            HTTP listen port (default 8089)
//	WEBHOOK_SECRET  shared secret checked on every delivery (optional)
//	CSV_PATH        ledger location (default /data/letterboxd_diary_queue.csv)
//	DEDUPE_DAYS     dedupe window in days (default 2)
//	MIN_PERCENT     completion threshold (default 85)
//	LOG_LEVEL       debug, info, warn, error (default info)
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops
// accepting connections and waits up to 10s for in-flight requests.
//
// # Example Usage
//
//	export WEBHOOK_SECRET=$(openssl rand -hex 16)
//	export CSV_PATH=/data/letterboxd_diary_queue.csv
//	./reelog
//
// Docker:
//
//	docker run -d \
//	  -e WEBHOOK_SECRET=your-secret \
//	  -v /srv/reelog:/data \
//	  -p 8089:8089 \
//	  ghcr.io/reelog/reelog
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelog/reelog/internal/api"
	"github.com/reelog/reelog/internal/config"
	"github.com/reelog/reelog/internal/diary"
	"github.com/reelog/reelog/internal/ledger"
	"github.com/reelog/reelog/internal/logging"
	"github.com/reelog/reelog/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", api.Version).
		Str("ledger_path", cfg.Ledger.Path).
		Int("dedupe_days", cfg.Ledger.DedupeDays).
		Float64("min_percent", cfg.Webhook.MinPercent).
		Bool("secret_configured", cfg.Webhook.Secret != "").
		Msg("Starting Reelog")

	store := ledger.New(cfg.Ledger.Path)
	if err := store.Ensure(); err != nil {
		// The mount may appear later; the webhook handler retries
		// creation on every delivery.
		logging.Warn().Err(err).Str("path", cfg.Ledger.Path).Msg("Ledger not writable at startup")
	}

	pipeline := diary.NewPipeline(store, cfg.Ledger.DedupeDays)

	handler := api.NewHandler(cfg, pipeline, store)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
