// Careermatch - Career Guidance Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/careermatch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/careermatch/internal/models"
)

// readyTimeout bounds the database ping of the readiness probe.
const readyTimeout = 2 * time.Second

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status            string  `json:"status"`
	DatabaseConnected bool    `json:"database_connected"`
	Uptime            float64 `json:"uptime"`
}

// HealthLive handles GET /api/v1/health/live. It never touches dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}

// HealthReady handles GET /api/v1/health/ready.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if h.deps.DB == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database not configured", nil)
		return
	}
	if err := h.deps.DB.Ping(ctx); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database unavailable", err)
		return
	}

	respondSuccess(w, r, HealthStatus{
		Status:            "ready",
		DatabaseConnected: true,
		Uptime:            time.Since(h.startTime).Seconds(),
	}, models.Metadata{})
}
