// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// SnapshotFlusher is satisfied by *session.Manager.
type SnapshotFlusher interface {
	// FlushSnapshots waits until queued session snapshots are written.
	FlushSnapshots(ctx context.Context) error
}

// HTTPServerService runs the UI server until its context is canceled. On
// cancellation it stops accepting requests, waits for in-flight event
// dispatches, then flushes the snapshots those events queued so a
// restarted process can resume the sessions.
//
//	server := &http.Server{Addr: ":8080", Handler: router}
//	svc := services.NewHTTPServerService(server, 10*time.Second, log).WithSessions(manager)
//	tree.AddAPIService(svc)
type HTTPServerService struct {
	server          HTTPServer
	sessions        SnapshotFlusher
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	name            string
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout becomes
// 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "http-server").Logger(),
		name:            "http-server",
	}
}

// WithSessions flushes session snapshots after the server has drained.
func (h *HTTPServerService) WithSessions(sessions SnapshotFlusher) *HTTPServerService {
	h.sessions = sessions
	return h
}

// Serve implements suture.Service. http.ErrServerClosed is not an error.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		return h.drain(ctx, errCh)
	}
}

// drain shuts the server down and flushes snapshots under one deadline.
// ctx is already canceled, so the deadline starts from a fresh context.
func (h *HTTPServerService) drain(ctx context.Context, errCh <-chan error) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()

	start := time.Now()
	if err := h.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	<-errCh

	if h.sessions != nil {
		if err := h.sessions.FlushSnapshots(shutdownCtx); err != nil {
			// the sessions stay restorable from their previous snapshot
			h.logger.Warn().Err(err).Msg("session snapshots not flushed before shutdown deadline")
		}
	}
	h.logger.Info().Dur("drain", time.Since(start)).Msg("http server stopped")
	return ctx.Err()
}

func (h *HTTPServerService) String() string {
	return h.name
}
