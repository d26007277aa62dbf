// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinematch/internal/logging"
	ws "github.com/tomtom215/cinematch/internal/websocket"
)

// WebSocket upgrades /ws?session=<id> and binds the connection to that
// session. The session cookie is used when the query parameter is absent.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.wsHub == nil {
		logging.Ctx(ctx).Warn().Msg("WebSocket connection rejected: hub not initialized")
		NewResponseWriter(w, r).ServiceUnavailable(ErrHubUnavailable.Error())
		return
	}

	id := r.URL.Query().Get("session")
	if id == "" {
		if c, err := r.Cookie(SessionCookie); err == nil {
			id = c.Value
		}
	}
	if id == "" {
		NewResponseWriter(w, r).BadRequest(ErrMissingSession.Error())
		return
	}
	sess, err := h.sessions.Get(ctx, id)
	if err != nil {
		h.writeSessionError(NewResponseWriter(w, r), err)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		logging.Ctx(ctx).Debug().Err(err).Msg("WebSocket upgrade error")
		return
	}

	if err := ws.NewClient(h.wsHub, conn, sess).Start(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("session_id", sess.ID()).Msg("WebSocket client not started")
		_ = conn.Close()
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts the page's own origin and any configured CORS
// origin. Browsers always send Origin on WebSocket handshakes, so a missing
// header is rejected.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
		return true
	}

	if h.config != nil {
		for _, allowed := range h.config.Security.CORSOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
