// Reelog - Letterboxd Diary Ledger for Media Servers
// Copyright 2026 The Reelog Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelog/reelog

package api

import (
	"time"

	"github.com/reelog/reelog/internal/config"
	"github.com/reelog/reelog/internal/diary"
	"github.com/reelog/reelog/internal/ledger"
)

// Version is the Reelog release version reported by the health API.
const Version = "1.0.0"

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	config    *config.Config
	pipeline  *diary.Pipeline
	store     *ledger.Store
	startTime time.Time
}

// NewHandler creates a Handler with all dependencies.
func NewHandler(cfg *config.Config, pipeline *diary.Pipeline, store *ledger.Store) *Handler {
	return &Handler{
		config:    cfg,
		pipeline:  pipeline,
		store:     store,
		startTime: time.Now(),
	}
}
