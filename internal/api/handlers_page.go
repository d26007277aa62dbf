// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/session"
)

// SessionCookie carries the session id between page loads.
const SessionCookie = "cinematch_session"

//go:embed static
var staticFiles embed.FS

// Page serves the server-rendered page for the caller's session. A session
// already driven by another tab is left alone and a new one is started.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cookieID string
	if c, err := r.Cookie(SessionCookie); err == nil {
		cookieID = c.Value
	}

	sess, err := h.sessions.GetOrCreate(ctx, cookieID)
	if err == nil && sess.Attached() {
		sess, err = h.sessions.Create(ctx)
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to open session for page")
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	// the page shows the current state, so buffered patches are stale
	sess.Drain()

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, sess.State(), sess.ID()); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("session_id", sess.ID()).Msg("Failed to render page")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, sess)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID(),
		Path:     "/",
		MaxAge:   h.cookieMaxAge(),
		HttpOnly: true,
		Secure:   h.cookieSecure(),
		SameSite: http.SameSiteLaxMode,
	})
}

// Static serves the embedded script and stylesheet under /static/.
func (h *Handler) Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// ServiceWorker serves the worker script from the root so its scope covers
// the whole site.
func (h *Handler) ServiceWorker(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/sw.js")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Service-Worker-Allowed", "/")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}
