// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionReaper is satisfied by *session.Manager.
type SessionReaper interface {
	// Reap evicts idle detached sessions and returns how many it removed.
	Reap() int
	Len() int
}

// SessionReaperService calls Reap every interval.
type SessionReaperService struct {
	reaper   SessionReaper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSessionReaperService creates the service. A non-positive interval
// becomes one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSessionReaperService(reaper SessionReaper, interval time.Duration, logger zerolog.Logger) *SessionReaperService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionReaperService{
		reaper:   reaper,
		interval: interval,
		logger:   logger.With().Str("service", "session-reaper").Logger(),
		name:     "session-reaper",
	}
}

// Serve implements suture.Service.
func (s *SessionReaperService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("session reaper starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session reaper shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.reapOnce()
		}
	}
}

func (s *SessionReaperService) reapOnce() {
	if n := s.reaper.Reap(); n > 0 {
		s.logger.Info().
			Int("reaped", n).
			Int("remaining", s.reaper.Len()).
			Msg("idle sessions reaped")
	}
}

func (s *SessionReaperService) String() string {
	return s.name
}
