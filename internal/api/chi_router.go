// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

// Package api provides the HTTP surface of Reelog: the Tautulli
// webhook, the read-only diary API, health probes, and Prometheus
// metrics, all routed through Chi.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelog/reelog/internal/middleware"
)

// Router wires handlers and middleware into the Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router from the handler and middleware factory.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler form for r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global stack, applied to all routes in order. CORS must be
	// global to handle OPTIONS preflight.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints get a permissive limit for monitoring tools.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Webhook ingestion. Authentication is the shared secret checked
	// inside the handler, not a middleware: the 401-vs-200 contract
	// depends on the decode outcome order.
	r.Route("/webhook", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Post("/tautulli", router.handler.TautulliWebhook)
	})

	// Read-only diary API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Get("/diary", router.handler.Diary)
		r.Get("/diary/stats", router.handler.DiaryStats)
		r.With(router.chiMiddleware.RateLimitExport()).Get("/export/diary.csv", router.handler.ExportDiary)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
