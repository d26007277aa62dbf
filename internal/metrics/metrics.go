// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package metrics declares the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto and
// are grouped by concern:
//   - HTTP API request counts and latency
//   - upstream engine calls and circuit breaker state
//   - UI sessions, dispatched events and executed effects
//   - WebSocket connections
//   - response caches
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_api_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Upstream recommendation engine
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_upstream_requests_total",
			Help: "Calls made to the recommendation engine",
		},
		[]string{"endpoint", "outcome"}, // outcome: ok, app_error, transport_error
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_upstream_request_duration_seconds",
			Help:    "Recommendation engine latency in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	UpstreamRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cinematch_upstream_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the outbound rate limiter",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// Circuit breaker
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests passed through the circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// UI sessions
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_sessions_active",
			Help: "UI sessions currently held in memory",
		},
	)

	SessionsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_sessions_created_total",
			Help: "UI sessions created, by origin",
		},
		[]string{"origin"}, // new, restored
	)

	SessionsReaped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_sessions_reaped_total",
			Help: "Idle UI sessions evicted by the reaper",
		},
	)

	SnapshotSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_snapshot_saves_total",
			Help: "Session snapshot writes, by result",
		},
		[]string{"result"}, // ok, error
	)

	UIEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_ui_events_total",
			Help: "UI events dispatched to the controller",
		},
		[]string{"event"},
	)

	UIEffectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_ui_effects_total",
			Help: "Effects executed by the session runtime",
		},
		[]string{"effect"},
	)

	PatchesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_patches_dropped_total",
			Help: "Render patches dropped because the session outbox was full",
		},
	)

	// WebSocket
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_websocket_connections",
			Help: "Open WebSocket connections",
		},
	)

	WSMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_websocket_messages_total",
			Help: "WebSocket messages by direction",
		},
		[]string{"direction"}, // in, out
	)

	// Caches
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_cache_hits_total",
			Help: "Response cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_cache_misses_total",
			Help: "Response cache misses",
		},
		[]string{"cache"},
	)
)

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// Upstream call outcomes.
const (
	OutcomeOK             = "ok"
	OutcomeAppError       = "app_error"
	OutcomeTransportError = "transport_error"
)

// RecordUpstreamRequest records one call to the recommendation engine.
func RecordUpstreamRequest(endpoint, outcome string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordCacheLookup records a hit or miss for the named cache.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordUIEvent counts an event handed to the controller.
func RecordUIEvent(event string) {
	UIEventsTotal.WithLabelValues(event).Inc()
}

// RecordUIEffect counts an effect executed by a session runtime.
func RecordUIEffect(effect string) {
	UIEffectsTotal.WithLabelValues(effect).Inc()
}
