// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/validation"
)

const maxEventBodySize = 16 * 1024

// SessionResponse carries a session id and the patches to apply.
type SessionResponse struct {
	SessionID string          `json:"session_id"`
	Patches   []session.Patch `json:"patches"`
}

// SessionEnvelope is the APIResponse shape of the session endpoints, named
// for the API description.
type SessionEnvelope struct {
	Success bool            `json:"success"`
	Data    SessionResponse `json:"data"`
	Meta    *APIMeta        `json:"meta,omitempty"`
}

// CreateSession starts a session for a client without the page shell and
// returns the patches that paint every region.
// @Summary Create UI session
// @Tags Sessions
// @Produce json
// @Success 201 {object} SessionEnvelope
// @Failure 429 {object} APIResponse
// @Failure 503 {object} APIResponse
// @Router /ui/sessions [post]
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to create session")
		NewResponseWriter(w, r).ServiceUnavailable("could not create session")
		return
	}
	h.setSessionCookie(w, sess)
	NewResponseWriter(w, r).Created(SessionResponse{
		SessionID: sess.ID(),
		Patches:   nonNil(sess.RenderAll()),
	})
}

// DispatchEvent applies one browser event and returns every pending patch.
// Results of upstream calls arrive later; poll PendingPatches for them.
// @Summary Dispatch UI event
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param event body session.WireEvent true "Browser event"
// @Success 200 {object} SessionEnvelope
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 410 {object} APIResponse
// @Router /ui/sessions/{id}/events [post]
func (h *Handler) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var wire session.WireEvent
	body := http.MaxBytesReader(w, r.Body, maxEventBodySize)
	data, err := io.ReadAll(body)
	if err != nil {
		rw.BadRequest("request body too large")
		return
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}

	ev, err := wire.Decode()
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.As(err, &verr):
			rw.ValidationError(verr)
		case errors.Is(err, session.ErrUnknownEvent):
			rw.Error(http.StatusBadRequest, ErrCodeUnknownEvent, err.Error())
		default:
			rw.BadRequest(err.Error())
		}
		return
	}

	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	patches, err := sess.DispatchCollect(ev)
	if err != nil {
		h.writeSessionError(rw, err)
		return
	}
	rw.Success(SessionResponse{SessionID: sess.ID(), Patches: nonNil(patches)})
}

// PendingPatches drains patches produced since the last call.
// @Summary Poll pending patches
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionEnvelope
// @Failure 404 {object} APIResponse
// @Router /ui/sessions/{id}/patches [get]
func (h *Handler) PendingPatches(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.lookupSession(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, r, SessionResponse{SessionID: sess.ID(), Patches: nonNil(sess.Drain())})
}

// CloseSession ends a session and deletes its snapshot.
// @Summary Close UI session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /ui/sessions/{id} [delete]
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeSessionError(NewResponseWriter(w, r), err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

func (h *Handler) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		NewResponseWriter(w, r).BadRequest(ErrMissingSession.Error())
		return nil, false
	}
	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.writeSessionError(NewResponseWriter(w, r), err)
		return nil, false
	}
	return sess, true
}

func (h *Handler) writeSessionError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		rw.NotFound("session not found")
	case errors.Is(err, session.ErrSessionClosed):
		rw.Error(http.StatusGone, ErrCodeGone, "session closed")
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Session operation failed")
		rw.InternalError("session operation failed")
	}
}

func nonNil(p []session.Patch) []session.Patch {
	if p == nil {
		return []session.Patch{}
	}
	return p
}
