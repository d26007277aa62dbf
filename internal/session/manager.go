// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Session origins recorded in metrics.
const (
	OriginNew      = "new"
	OriginRestored = "restored"
)

// ManagerConfig configures session lifetime.
type ManagerConfig struct {
	Deps Deps
	// Store persists snapshots. Nil disables persistence.
	Store SnapshotStore
	// IdleTimeout evicts detached sessions that saw no event for this long.
	IdleTimeout time.Duration
	// SaveTimeout bounds one snapshot write. Zero means DefaultSaveTimeout.
	SaveTimeout time.Duration
}

// Manager owns the live sessions of this process.
type Manager struct {
	deps        Deps
	store       SnapshotStore
	writer      *snapshotWriter
	idleTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
	closed   bool
}

// NewManager returns an empty manager.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Deps.Clock == nil {
		cfg.Deps.Clock = RealClock{}
	}
	m := &Manager{
		deps:        cfg.Deps,
		store:       cfg.Store,
		idleTimeout: cfg.IdleTimeout,
		sessions:    make(map[string]*Session),
	}
	if cfg.Store != nil {
		m.writer = newSnapshotWriter(cfg.Store, cfg.SaveTimeout)
	}
	return m
}

// Create starts a new session with a fresh id.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	sess, err := m.add(id, controller.State{})
	if err != nil {
		return nil, err
	}
	metrics.SessionsCreated.WithLabelValues(OriginNew).Inc()
	logging.Ctx(ctx).Debug().Str("session_id", id).Msg("Session created")
	m.persist(id, controller.State{})
	return sess, nil
}

// Get returns the live session for id, restoring it from the snapshot store
// if it was reaped or the process restarted.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	if m.store == nil || id == "" {
		return nil, ErrSessionNotFound
	}
	snap, found, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	sess, err = m.add(id, resumable(snap.State))
	if err != nil {
		return nil, err
	}
	metrics.SessionsCreated.WithLabelValues(OriginRestored).Inc()
	logging.Ctx(ctx).Debug().Str("session_id", id).Time("snapshot_at", snap.UpdatedAt).Msg("Session restored")
	return sess, nil
}

// GetOrCreate returns the session for id or a new one when id is unknown.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	if id != "" {
		sess, err := m.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if err != ErrSessionNotFound {
			logging.Ctx(ctx).Warn().Err(err).Str("session_id", id).Msg("Session restore failed, starting fresh")
		}
	}
	return m.Create(ctx)
}

// Close ends a session and forgets its snapshot.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		sess.Close()
		metrics.SessionsActive.Dec()
	}
	if m.store != nil {
		m.writer.discard(id)
		if err := m.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// FlushSnapshots waits until every snapshot queued so far is written, or
// until ctx is done.
func (m *Manager) FlushSnapshots(ctx context.Context) error {
	if m.writer == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		m.writer.flushAll()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush snapshots: %w", ctx.Err())
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Reap evicts detached sessions idle for longer than the idle timeout. Their
// snapshots stay in the store so they can be restored later.
func (m *Manager) Reap() int {
	if m.idleTimeout <= 0 {
		return 0
	}
	cutoff := m.deps.Clock.Now().Add(-m.idleTimeout)

	m.mu.Lock()
	var idle []*Session
	for id, sess := range m.sessions {
		if !sess.Attached() && sess.LastActive().Before(cutoff) {
			idle = append(idle, sess)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
		if m.writer != nil {
			m.writer.flush(sess.ID())
		}
		metrics.SessionsActive.Dec()
		metrics.SessionsReaped.Inc()
	}
	if len(idle) > 0 {
		logging.Debug().Int("count", len(idle)).Msg("Reaped idle sessions")
	}
	return len(idle)
}

// Shutdown closes every session and waits for their last snapshots. The
// manager rejects new sessions afterwards.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
		metrics.SessionsActive.Dec()
	}
	if m.writer != nil {
		m.writer.flushAll()
	}
}

func (m *Manager) add(id string, state controller.State) (*Session, error) {
	sess := newSession(id, state, m.deps)
	sess.onChange = m.persist

	m.mu.Lock()
	existing, dup := m.sessions[id]
	closed := m.closed
	if !closed && !dup {
		m.sessions[id] = sess
		metrics.SessionsActive.Inc()
	}
	m.mu.Unlock()

	switch {
	case closed:
		sess.Close()
		return nil, ErrSessionClosed
	case dup:
		// a concurrent restore of the same id won
		sess.Close()
		return existing, nil
	}
	return sess, nil
}

// persist queues a snapshot. It runs under the session lock, so the write
// itself happens on the snapshot writer.
func (m *Manager) persist(id string, state controller.State) {
	if m.writer == nil {
		return
	}
	m.writer.enqueue(Snapshot{ID: id, State: state, UpdatedAt: m.deps.Clock.Now()})
}

// resumable clears the parts of a snapshot that referred to work in flight
// when it was taken: pending calls and timers died with the old session.
func resumable(s controller.State) controller.State {
	if s.Panel == controller.PanelLoading {
		s.Panel = controller.PanelIdle
	}
	s.SearchBusy = false
	s.AutocompletePending = false
	s.DropdownVisible = false
	return s
}
