// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/view"
	ws "github.com/tomtom215/cinematch/internal/websocket"
)

// Sessions is the session lifecycle the handlers drive.
type Sessions interface {
	Create(ctx context.Context) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	GetOrCreate(ctx context.Context, id string) (*session.Session, error)
	Close(ctx context.Context, id string) error
	Len() int
}

// BreakerReporter reports the upstream circuit breaker state.
type BreakerReporter interface {
	BreakerState() string
}

// HandlerDeps are the collaborators of Handler.
type HandlerDeps struct {
	Sessions Sessions
	Renderer *view.Renderer
	Hub      *ws.Hub
	Upstream BreakerReporter
	Config   *config.Config
	Version  string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_page.go: page shell, static assets, service worker
//   - handlers_session.go: REST session and event endpoints
//   - handlers_websocket.go: /ws upgrade
//   - handlers_health.go: health endpoints
type Handler struct {
	sessions  Sessions
	renderer  *view.Renderer
	wsHub     *ws.Hub
	upstream  BreakerReporter
	config    *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates a Handler.
func NewHandler(deps HandlerDeps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		sessions:  deps.Sessions,
		renderer:  deps.Renderer,
		wsHub:     deps.Hub,
		upstream:  deps.Upstream,
		config:    deps.Config,
		version:   version,
		startTime: time.Now(),
	}
}

// cookieSecure is forced on in production.
func (h *Handler) cookieSecure() bool {
	return h.config != nil && (h.config.Session.CookieSecure || h.config.Server.IsProduction())
}

func (h *Handler) cookieMaxAge() int {
	if h.config == nil || h.config.Session.SnapshotTTL <= 0 {
		return 0
	}
	return int(h.config.Session.SnapshotTTL / time.Second)
}
