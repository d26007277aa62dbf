// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"sync"
	"testing"
	"time"
)

// newTestCache returns a cache without the background sweep and with a
// controllable clock.
func newTestCache[V any](ttl time.Duration) (*Cache[V], *time.Time) {
	c := NewWithCleanup[V](ttl, 0)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestCache_SetGet(t *testing.T) {
	c, _ := newTestCache[string](time.Minute)
	defer c.Close()

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Fatalf("Get() = (%q, %v), want (v, true)", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit and 1 miss", s)
	}
	if s.HitRate() != 50 {
		t.Errorf("HitRate() = %v, want 50", s.HitRate())
	}
}

func TestCache_Expiry(t *testing.T) {
	c, now := newTestCache[int](time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.SetWithTTL("b", 2, time.Hour)

	*now = now.Add(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("b = (%d, %v), want (2, true)", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after lazy eviction", c.Len())
	}
}

func TestCache_Cleanup(t *testing.T) {
	c, now := newTestCache[int](time.Second)
	defer c.Close()

	for i, k := range []string{"x", "y", "z"} {
		c.Set(k, i)
	}
	*now = now.Add(5 * time.Second)

	if removed := c.Cleanup(); removed != 3 {
		t.Errorf("Cleanup() removed %d, want 3", removed)
	}
	if s := c.Stats(); s.Keys != 0 || s.Evictions != 3 || s.LastCleanup.IsZero() {
		t.Errorf("stats after cleanup = %+v", s)
	}
}

func TestCache_Delete(t *testing.T) {
	c, _ := newTestCache[string](time.Minute)
	defer c.Close()

	c.Set("k", "v")
	c.Delete("k")
	c.Delete("never-there")

	if _, ok := c.Get("k"); ok {
		t.Error("k should be gone")
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%5))
			for j := 0; j < 100; j++ {
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
}

func TestCache_CloseIdempotent(t *testing.T) {
	c := New[int](time.Minute)
	c.Close()
	c.Close()
}
