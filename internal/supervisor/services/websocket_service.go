// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ContextHub is satisfied by *websocket.Hub. Declaring it here keeps this
// package free of the websocket import.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
	GetClientCount() int
}

// SessionCounter is satisfied by *session.Manager.
type SessionCounter interface {
	Len() int
}

// WebSocketHubService supervises the hub. When it stops, the hub closes
// every client and the sessions behind them detach: their patches queue in
// the session outbox until a browser reconnects or the reaper evicts them.
// A restarted hub accepts clients again.
type WebSocketHubService struct {
	hub      ContextHub
	sessions SessionCounter
	logger   zerolog.Logger
	name     string
}

// NewWebSocketHubService wraps hub.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWebSocketHubService(hub ContextHub, logger zerolog.Logger) *WebSocketHubService {
	return &WebSocketHubService{
		hub:    hub,
		logger: logger.With().Str("service", "websocket-hub").Logger(),
		name:   "websocket-hub",
	}
}

// WithSessions reports how many sessions are left detached on stop.
func (w *WebSocketHubService) WithSessions(sessions SessionCounter) *WebSocketHubService {
	w.sessions = sessions
	return w
}

// Serve implements suture.Service.
func (w *WebSocketHubService) Serve(ctx context.Context) error {
	err := w.hub.RunWithContext(ctx)

	event := w.logger.Info().Int("clients", w.hub.GetClientCount())
	if w.sessions != nil {
		event = event.Int("detached_sessions", w.sessions.Len())
	}
	event.Msg("websocket hub service stopped")

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("websocket hub: %w", err)
	}
	return err
}

func (w *WebSocketHubService) String() string {
	return w.name
}
