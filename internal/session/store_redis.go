// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cinematch:" + snapshotKeyPrefix

// RedisStore persists snapshots in Redis so several server replicas can
// resume each other's sessions. Expiry is left to Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// ParseRedisOptions accepts either a redis:// URL or a bare host:port.
func ParseRedisOptions(addr string) (*redis.Options, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opt, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opt, nil
	}
	return &redis.Options{Addr: addr}, nil
}

// OpenRedisStore connects to addr and pings it once.
func OpenRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	opt, err := ParseRedisOptions(addr)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis for sessions: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Save stores snap with the store TTL.
func (r *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+snap.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot for id.
func (r *RedisStore) Load(ctx context.Context, id string) (Snapshot, bool, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// Delete removes the snapshot for id.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
