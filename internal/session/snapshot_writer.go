// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// DefaultSaveTimeout bounds one snapshot write when none is configured.
const DefaultSaveTimeout = 5 * time.Second

// snapshotWriter saves snapshots off the session lock. Each session has at
// most one write in flight; states that arrive meanwhile collapse into the
// newest one, which is written when the current write returns.
type snapshotWriter struct {
	store   SnapshotStore
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]Snapshot
	running map[string]chan struct{}
}

func newSnapshotWriter(store SnapshotStore, timeout time.Duration) *snapshotWriter {
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	return &snapshotWriter{
		store:   store,
		timeout: timeout,
		pending: make(map[string]Snapshot),
		running: make(map[string]chan struct{}),
	}
}

// enqueue records snap as the newest state of its session and starts a
// writer for the session if none is running. It never blocks on the store.
func (w *snapshotWriter) enqueue(snap Snapshot) {
	w.mu.Lock()
	w.pending[snap.ID] = snap
	if _, busy := w.running[snap.ID]; busy {
		w.mu.Unlock()
		return
	}
	done := make(chan struct{})
	w.running[snap.ID] = done
	w.mu.Unlock()

	go w.run(snap.ID, done)
}

func (w *snapshotWriter) run(id string, done chan struct{}) {
	defer close(done)
	for {
		w.mu.Lock()
		snap, ok := w.pending[id]
		delete(w.pending, id)
		if !ok {
			delete(w.running, id)
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.store.Save(ctx, snap)
		cancel()
		if err != nil {
			metrics.SnapshotSaves.WithLabelValues("error").Inc()
			logging.Warn().Err(err).Str("session_id", id).Msg("Failed to save session snapshot")
			continue
		}
		metrics.SnapshotSaves.WithLabelValues("ok").Inc()
	}
}

// flush waits until every state queued for id so far has been written.
func (w *snapshotWriter) flush(id string) {
	w.mu.Lock()
	done := w.running[id]
	w.mu.Unlock()
	if done != nil {
		<-done
	}
}

// discard drops the queued state for id and waits for a write in flight, so
// a following Delete is not overtaken by a late Save.
func (w *snapshotWriter) discard(id string) {
	w.mu.Lock()
	delete(w.pending, id)
	done := w.running[id]
	w.mu.Unlock()
	if done != nil {
		<-done
	}
}

// flushAll waits for every writer running when it was called.
func (w *snapshotWriter) flushAll() {
	w.mu.Lock()
	waits := make([]chan struct{}, 0, len(w.running))
	for _, done := range w.running {
		waits = append(waits, done)
	}
	w.mu.Unlock()
	for _, done := range waits {
		<-done
	}
}
