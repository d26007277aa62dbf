// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommendapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// Cache labels used in metrics.
const (
	CacheStats        = "stats"
	CacheAutocomplete = "autocomplete"
)

const statsKey = "stats"

// CachingClient caches the two read-only, frequently repeated calls: the
// dataset stats fetched on every page load and autocomplete lookups. Only
// successful responses are stored. Recommend and Filter always go through.
type CachingClient struct {
	Client

	stats           *cache.Cache[*models.StatsResponse]
	suggestions     *ristretto.Cache[string, *models.AutocompleteResponse]
	autocompleteTTL time.Duration
}

// NewCachingClient wraps next. A zero TTL in cfg disables that cache.
func NewCachingClient(next Client, cfg config.CacheConfig) (*CachingClient, error) {
	c := &CachingClient{Client: next, autocompleteTTL: cfg.AutocompleteTTL}

	if cfg.StatsTTL > 0 {
		c.stats = cache.New[*models.StatsResponse](cfg.StatsTTL)
	}

	if cfg.AutocompleteTTL > 0 {
		maxEntries := cfg.AutocompleteMaxEntries
		if maxEntries <= 0 {
			maxEntries = 10000
		}
		rc, err := ristretto.NewCache(&ristretto.Config[string, *models.AutocompleteResponse]{
			NumCounters: maxEntries * 10,
			MaxCost:     maxEntries,
			BufferItems: 64,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("create autocomplete cache: %w", err)
		}
		c.suggestions = rc
	}
	return c, nil
}

// Stats serves the dataset summary from cache when fresh.
func (c *CachingClient) Stats(ctx context.Context) (*models.StatsResponse, error) {
	if c.stats == nil {
		return c.Client.Stats(ctx)
	}
	if resp, ok := c.stats.Get(statsKey); ok {
		metrics.RecordCacheLookup(CacheStats, true)
		return resp, nil
	}
	metrics.RecordCacheLookup(CacheStats, false)

	resp, err := c.Client.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if resp.Success {
		c.stats.Set(statsKey, resp)
	}
	return resp, nil
}

// Autocomplete serves suggestions from cache when fresh. Lookups are case
// insensitive.
func (c *CachingClient) Autocomplete(ctx context.Context, query string, limit int) (*models.AutocompleteResponse, error) {
	if c.suggestions == nil {
		return c.Client.Autocomplete(ctx, query, limit)
	}
	key := autocompleteKey(query, limit)
	if resp, ok := c.suggestions.Get(key); ok {
		metrics.RecordCacheLookup(CacheAutocomplete, true)
		return resp, nil
	}
	metrics.RecordCacheLookup(CacheAutocomplete, false)

	resp, err := c.Client.Autocomplete(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if resp.Error == "" {
		c.suggestions.SetWithTTL(key, resp, 1, c.autocompleteTTL)
	}
	return resp, nil
}

// Wait blocks until pending cache writes are visible. Tests use it; ristretto
// applies sets asynchronously.
func (c *CachingClient) Wait() {
	if c.suggestions != nil {
		c.suggestions.Wait()
	}
}

// Close releases both caches.
func (c *CachingClient) Close() {
	if c.stats != nil {
		c.stats.Close()
	}
	if c.suggestions != nil {
		c.suggestions.Close()
	}
}

func autocompleteKey(query string, limit int) string {
	return strconv.Itoa(limit) + "|" + strings.ToLower(strings.TrimSpace(query))
}
