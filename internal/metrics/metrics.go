// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

// Package metrics provides Prometheus instrumentation for Reelog:
// webhook outcomes, ledger operations, and HTTP endpoint latency.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Webhook Metrics
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelog_webhook_events_total",
			Help: "Total webhook deliveries by outcome",
		},
		[]string{"outcome"}, // "logged", "filtered", "deduped", "unauthorized", "failed"
	)

	// Ledger Metrics
	LedgerAppendsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelog_ledger_appends_total",
			Help: "Total diary entries appended to the ledger",
		},
	)

	LedgerAppendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelog_ledger_append_errors_total",
			Help: "Total failed ledger append attempts",
		},
	)

	LedgerDedupeHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reelog_ledger_dedupe_hits_total",
			Help: "Total events suppressed by the dedupe window",
		},
	)

	LedgerScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelog_ledger_scan_duration_seconds",
			Help:    "Duration of ledger file scans in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"}, // "dedupe", "rewatch", "entries"
	)

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelog_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelog_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)
)

// RecordWebhookOutcome counts one webhook delivery by its outcome.
func RecordWebhookOutcome(outcome string) {
	WebhookEventsTotal.WithLabelValues(outcome).Inc()
}

// RecordLedgerScan observes a ledger scan duration.
func RecordLedgerScan(operation string, duration time.Duration) {
	LedgerScanDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(active bool) {
	if active {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}
