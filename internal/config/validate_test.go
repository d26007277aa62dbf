// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"bad environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"upstream scheme", func(c *Config) { c.Upstream.BaseURL = "ftp://engine" }, "RECOMMENDER_URL"},
		{"upstream query", func(c *Config) { c.Upstream.BaseURL = "http://engine?x=1" }, "RECOMMENDER_URL"},
		{"upstream path prefix allowed", func(c *Config) { c.Upstream.BaseURL = "http://gw/recommender" }, ""},
		{"breaker ratio", func(c *Config) { c.Upstream.Breaker.FailureRatio = 1.5 }, "RECOMMENDER_BREAKER_RATIO"},
		{"breaker disabled skips checks", func(c *Config) {
			c.Upstream.Breaker.Enabled = false
			c.Upstream.Breaker.FailureRatio = 0
		}, ""},
		{"burst required with rate", func(c *Config) { c.Upstream.RateBurst = 0 }, "RECOMMENDER_RATE_BURST"},
		{"zero count", func(c *Config) { c.UI.RecommendationCount = 0 }, "RECOMMENDATION_COUNT"},
		{"zero min chars", func(c *Config) { c.UI.AutocompleteMinChars = 0 }, "AUTOCOMPLETE_MIN_CHARS"},
		{"no placeholder", func(c *Config) { c.UI.PlaceholderPoster = "" }, "PLACEHOLDER_POSTER"},
		{"cache entries", func(c *Config) { c.Cache.AutocompleteMaxEntries = 0 }, "AUTOCOMPLETE_CACHE_MAX_ENTRIES"},
		{"cache disabled", func(c *Config) {
			c.Cache.AutocompleteTTL = 0
			c.Cache.AutocompleteMaxEntries = 0
		}, ""},
		{"session store", func(c *Config) { c.Session.Store = "etcd" }, "SESSION_STORE"},
		{"redis without addr", func(c *Config) { c.Session.Store = "redis" }, "SESSION_REDIS_ADDR"},
		{"redis", func(c *Config) {
			c.Session.Store = "redis"
			c.Session.RedisAddr = "localhost:6379"
		}, ""},
		{"outbox", func(c *Config) { c.Session.OutboxSize = 0 }, "SESSION_OUTBOX_SIZE"},
		{"save timeout", func(c *Config) { c.Session.SaveTimeout = 0 }, "SESSION_SAVE_TIMEOUT"},
		{"rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestHasWildcardCORS(t *testing.T) {
	cfg := defaultConfig()
	if cfg.HasWildcardCORS() {
		t.Error("defaults should not allow any origin")
	}
	cfg.Security.CORSOrigins = []string{"https://x.example", "*"}
	if !cfg.HasWildcardCORS() {
		t.Error("expected wildcard to be detected")
	}
}
