// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status           string  `json:"status"`
	Version          string  `json:"version"`
	Uptime           float64 `json:"uptime_seconds"`
	Sessions         int     `json:"sessions"`
	WebSocketClients int     `json:"websocket_clients"`
	CircuitBreaker   string  `json:"circuit_breaker"`
}

// Health reports overall status. The service is degraded while the upstream
// breaker is open: the page still works but every search fails fast.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	breaker := h.breakerState()
	status := "healthy"
	if breaker == "open" {
		status = "degraded"
	}

	health := HealthStatus{
		Status:         status,
		Version:        h.version,
		Uptime:         time.Since(h.startTime).Seconds(),
		CircuitBreaker: breaker,
	}
	if h.sessions != nil {
		health.Sessions = h.sessions.Len()
	}
	if h.wsHub != nil {
		health.WebSocketClients = h.wsHub.GetClientCount()
	}
	WriteSuccess(w, r, health)
}

// HealthLive is the liveness probe: the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. It fails while the upstream breaker is
// open so a load balancer can route around this instance.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	breaker := h.breakerState()
	if h.sessions == nil || h.renderer == nil {
		NewResponseWriter(w, r).ServiceUnavailable("not initialized")
		return
	}
	if breaker == "open" {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"recommendation engine unavailable", map[string]string{"circuit_breaker": breaker})
		return
	}
	WriteSuccess(w, r, map[string]string{"status": "ready", "circuit_breaker": breaker})
}

func (h *Handler) breakerState() string {
	if h.upstream == nil {
		return "disabled"
	}
	return h.upstream.BreakerState()
}
