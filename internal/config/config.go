// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

// Package config loads and validates the Reelog runtime configuration.
//
// Configuration is layered via Koanf v2 (highest priority wins):
// environment variables, then an optional YAML config file, then
// built-in defaults. The resulting *Config is constructed once at
// startup and passed into the components that need it; nothing in the
// core reads the environment directly.
package config

import "time"

// Config is the root configuration for the Reelog server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Webhook  WebhookConfig  `koanf:"webhook"`
	Ledger   LedgerConfig   `koanf:"ledger"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout"`
}

// WebhookConfig holds settings for the inbound Tautulli webhook.
type WebhookConfig struct {
	// Secret, when non-empty, must match the X-Webhook-Secret header
	// on every delivery. Empty disables the check.
	Secret string `koanf:"secret"`

	// MinPercent is the completion threshold: playback must reach this
	// percentage for the event to qualify for the diary.
	MinPercent float64 `koanf:"min_percent" validate:"min=0,max=100"`
}

// LedgerConfig holds settings for the diary CSV ledger.
type LedgerConfig struct {
	// Path is the location of the append-only diary CSV.
	Path string `koanf:"path" validate:"required"`

	// DedupeDays is the trailing window, in days, during which a repeat
	// title/year event is suppressed.
	DedupeDays int `koanf:"dedupe_days" validate:"min=0"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
