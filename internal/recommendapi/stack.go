// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommendapi

import (
	"github.com/tomtom215/cinematch/internal/config"
)

// Stack is the fully layered client built from configuration:
// cache -> circuit breaker -> HTTP.
type Stack struct {
	Client  Client
	Breaker *CircuitBreakerClient // nil when the breaker is disabled
	cache   *CachingClient
}

// NewStack builds the client layers described by cfg.
func NewStack(cfg *config.Config) (*Stack, error) {
	httpClient, err := NewHTTPClient(cfg.Upstream)
	if err != nil {
		return nil, err
	}

	s := &Stack{}
	var next Client = httpClient
	if cfg.Upstream.Breaker.Enabled {
		s.Breaker = NewCircuitBreakerClient(next, cfg.Upstream.Breaker)
		next = s.Breaker
	}

	s.cache, err = NewCachingClient(next, cfg.Cache)
	if err != nil {
		return nil, err
	}
	s.Client = s.cache
	return s, nil
}

// BreakerState reports the breaker state, or "disabled".
func (s *Stack) BreakerState() string {
	if s.Breaker == nil {
		return "disabled"
	}
	return s.Breaker.State()
}

// Close releases cache resources.
func (s *Stack) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}
