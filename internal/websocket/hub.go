// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// ErrHubStopped is returned when a client connects after the hub has stopped.
var ErrHubStopped = errors.New("websocket hub stopped")

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeEvent   = "event"
	MessageTypePatches = "patches"
	MessageTypeError   = "error"
	MessageTypePing    = "ping"
	MessageTypePong    = "pong"
)

// Error codes sent in error messages.
const (
	ErrorCodeUnknownEvent  = "UNKNOWN_EVENT"
	ErrorCodeSessionClosed = "SESSION_CLOSED"
)

// Message is a server to browser message.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// ClientMessage is a browser to server message.
type ClientMessage struct {
	Type    string          `json:"type"`
	Event   string          `json:"event,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ErrorData is the body of an error message.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Hub tracks open connections so they can be closed together.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	stopped bool
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

// RunWithContext blocks until ctx is done, then closes every client and
// returns ctx.Err(). After it returns the hub refuses new clients until it
// is run again, which lets a supervisor restart it.
func (h *Hub) RunWithContext(ctx context.Context) error {
	h.mu.Lock()
	h.stopped = false
	h.mu.Unlock()

	<-ctx.Done()
	h.logGracefulShutdown(ctx)
	return ctx.Err()
}

func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	h.clients[c] = true
	metrics.WSConnections.Inc()
	logging.Debug().Int("total_clients", len(h.clients)).Msg("websocket client connected")
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
		metrics.WSConnections.Dec()
		logging.Debug().Int("total_clients", len(h.clients)).Msg("websocket client disconnected")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// logGracefulShutdown closes all clients and logs why. ctx.Err() is not
// logged as an error since cancellation is the expected path.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// closeAllClients closes clients in ID order and marks the hub stopped.
func (h *Hub) closeAllClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		client.close()
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
	return len(clients)
}
