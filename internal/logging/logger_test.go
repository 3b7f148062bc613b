// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerEmitsStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	old := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(old)

	Info().Str("title", "Heat").Msg("Diary entry appended")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", buf.String())
	}
	if entry["title"] != "Heat" {
		t.Errorf("title = %v, want Heat", entry["title"])
	}
	if entry["message"] != "Diary entry appended" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestSlogAdapterWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	old := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(old)

	logger := NewSlogLogger()
	logger.Info("service started", slog.String("service", "http-server"), slog.Int("restarts", 2))

	line := buf.String()
	if !strings.Contains(line, `"service":"http-server"`) {
		t.Errorf("missing string attr in %q", line)
	}
	if !strings.Contains(line, `"restarts":2`) {
		t.Errorf("missing int attr in %q", line)
	}
	if !strings.Contains(line, "service started") {
		t.Errorf("missing message in %q", line)
	}
}

func TestSlogAdapterGroups(t *testing.T) {
	var buf bytes.Buffer
	old := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(old)

	logger := NewSlogLogger().WithGroup("supervisor")
	logger.Warn("restart", slog.String("service", "http-server"))

	if !strings.Contains(buf.String(), `"supervisor.service":"http-server"`) {
		t.Errorf("group prefix missing in %q", buf.String())
	}
}
