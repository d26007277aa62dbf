// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommendapi

import (
	"context"
	"sync"

	"github.com/tomtom215/cinematch/internal/models"
)

// countingClient returns canned responses and counts calls per endpoint.
type countingClient struct {
	mu    sync.Mutex
	calls map[string]int

	err          error
	recommend    *models.RecommendResponse
	autocomplete *models.AutocompleteResponse
	filter       *models.FilterResponse
	stats        *models.StatsResponse
}

func newCountingClient() *countingClient {
	return &countingClient{
		calls:        map[string]int{},
		recommend:    &models.RecommendResponse{Success: true},
		autocomplete: &models.AutocompleteResponse{Suggestions: []string{"Dangal"}},
		filter:       &models.FilterResponse{Success: true},
		stats:        &models.StatsResponse{Success: true, Stats: &models.Stats{}},
	}
}

func (c *countingClient) count(endpoint string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[endpoint]
}

func (c *countingClient) hit(endpoint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[endpoint]++
	return c.err
}

func (c *countingClient) Recommend(_ context.Context, _ string, _ int) (*models.RecommendResponse, error) {
	if err := c.hit(EndpointRecommend); err != nil {
		return nil, err
	}
	return c.recommend, nil
}

func (c *countingClient) Autocomplete(_ context.Context, _ string, _ int) (*models.AutocompleteResponse, error) {
	if err := c.hit(EndpointAutocomplete); err != nil {
		return nil, err
	}
	return c.autocomplete, nil
}

func (c *countingClient) Filter(_ context.Context, _ models.Filters) (*models.FilterResponse, error) {
	if err := c.hit(EndpointFilter); err != nil {
		return nil, err
	}
	return c.filter, nil
}

func (c *countingClient) Stats(_ context.Context) (*models.StatsResponse, error) {
	if err := c.hit(EndpointStats); err != nil {
		return nil, err
	}
	return c.stats, nil
}
