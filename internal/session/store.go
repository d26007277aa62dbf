// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/controller"
)

// StoreType selects the snapshot backend.
type StoreType string

const (
	// StoreMemory keeps snapshots in a TTL cache (default, lost on restart).
	StoreMemory StoreType = "memory"
	// StoreBadger keeps snapshots in BadgerDB.
	StoreBadger StoreType = "badger"
	// StoreRedis keeps snapshots in Redis, shared between replicas.
	StoreRedis StoreType = "redis"
)

// StoreOptions selects and configures the snapshot backend.
type StoreOptions struct {
	Type StoreType
	// Path is the badger directory. Empty keeps badger in memory.
	Path string
	// RedisAddr is a redis:// URL or host:port.
	RedisAddr string
	TTL       time.Duration
}

// Snapshot is the persisted form of a session.
type Snapshot struct {
	ID        string           `json:"id"`
	State     controller.State `json:"state"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// SnapshotStore persists session snapshots so a reloaded or reaped tab can
// resume where it left off.
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	// Load returns false when no snapshot exists for id.
	Load(ctx context.Context, id string) (Snapshot, bool, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore builds the configured store.
func NewStore(ctx context.Context, opts StoreOptions) (SnapshotStore, error) {
	switch opts.Type {
	case StoreMemory, "":
		return NewMemoryStore(opts.TTL), nil
	case StoreBadger:
		store, err := OpenBadgerStore(opts.Path, opts.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case StoreRedis:
		store, err := OpenRedisStore(ctx, opts.RedisAddr, opts.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", opts.Type)
	}
}

// MemoryStore keeps encoded snapshots in a TTL cache. Encoding keeps stored
// snapshots independent of the live state's slices.
type MemoryStore struct {
	cache *cache.Cache[[]byte]
}

// NewMemoryStore returns a store whose snapshots expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New[[]byte](ttl)}
}

// Save stores snap, replacing any previous snapshot for the id.
func (m *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	m.cache.Set(snap.ID, data)
	return nil
}

// Load returns the snapshot for id.
func (m *MemoryStore) Load(_ context.Context, id string) (Snapshot, bool, error) {
	data, ok := m.cache.Get(id)
	if !ok {
		return Snapshot{}, false, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// Delete removes the snapshot for id.
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

// Close stops the cache sweep.
func (m *MemoryStore) Close() error {
	m.cache.Close()
	return nil
}
