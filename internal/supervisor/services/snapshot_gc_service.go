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

// DefaultDiscardRatio is the fraction of a value log file that must be
// stale before badger rewrites it.
const DefaultDiscardRatio = 0.5

// GarbageCollector is satisfied by *session.BadgerStore.
type GarbageCollector interface {
	RunGC(discardRatio float64) (int, error)
}

// SnapshotGCService periodically compacts the snapshot store's value log.
// Snapshot TTLs expire keys, but badger only reclaims the disk space when
// value log GC runs.
type SnapshotGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSnapshotGCService creates the service. A non-positive interval becomes
// ten minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewSnapshotGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *SnapshotGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SnapshotGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "snapshot-gc").Logger(),
		name:     "snapshot-gc",
	}
}

// Serve implements suture.Service. GC failures are logged and retried on
// the next tick rather than restarting the service.
func (s *SnapshotGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			rewrites, err := s.store.RunGC(DefaultDiscardRatio)
			if err != nil {
				s.logger.Warn().Err(err).Msg("snapshot value log gc failed")
				continue
			}
			s.logger.Debug().
				Int("rewrites", rewrites).
				Dur("duration", time.Since(start)).
				Msg("snapshot value log gc complete")
		}
	}
}

func (s *SnapshotGCService) String() string {
	return s.name
}
