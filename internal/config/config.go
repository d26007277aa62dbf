// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package config loads CineMatch configuration.
//
// Values are layered with koanf, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. YAML file: $CONFIG_PATH, ./config.yaml or /etc/cinematch/config.yaml
//  3. Environment variables, mapped explicitly in envTransformFunc
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	upstream:
//	  base_url: http://recommender:5000
//	  timeout: 15s
//	ui:
//	  autocomplete_debounce: 300ms
//	session:
//	  store: badger
//	  store_path: /data/sessions
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	UI       UIConfig       `koanf:"ui"`
	Cache    CacheConfig    `koanf:"cache"`
	Session  SessionConfig  `koanf:"session"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// UpstreamConfig points at the recommendation engine.
type UpstreamConfig struct {
	// BaseURL is the engine root; the client appends /api/recommend etc.
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the outbound request rate in requests per second.
	// Zero disables client-side limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the engine.
type BreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// UIConfig holds the interaction constants.
type UIConfig struct {
	RecommendationCount  int           `koanf:"recommendation_count"`
	AutocompleteLimit    int           `koanf:"autocomplete_limit"`
	AutocompleteMinChars int           `koanf:"autocomplete_min_chars"`
	AutocompleteDebounce time.Duration `koanf:"autocomplete_debounce"`
	DropdownHideDelay    time.Duration `koanf:"dropdown_hide_delay"`
	PlaceholderPoster    string        `koanf:"placeholder_poster"`
	Title                string        `koanf:"title"`
}

// CacheConfig controls response caching in front of the engine. A zero TTL
// disables the corresponding cache.
type CacheConfig struct {
	StatsTTL               time.Duration `koanf:"stats_ttl"`
	AutocompleteTTL        time.Duration `koanf:"autocomplete_ttl"`
	AutocompleteMaxEntries int64         `koanf:"autocomplete_max_entries"`
}

// SessionConfig controls UI session lifetime and snapshot storage.
type SessionConfig struct {
	// Store is "memory" (default), "badger" or "redis".
	Store string `koanf:"store"`
	// StorePath is the badger directory. Empty keeps badger in memory.
	StorePath string `koanf:"store_path"`
	// RedisAddr is a redis:// URL or host:port, required for the redis store.
	RedisAddr    string        `koanf:"redis_addr"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	SnapshotTTL  time.Duration `koanf:"snapshot_ttl"`
	ReapInterval time.Duration `koanf:"reap_interval"`
	OutboxSize   int           `koanf:"outbox_size"`
	CookieSecure bool          `koanf:"cookie_secure"`
	// SaveTimeout bounds one snapshot write.
	SaveTimeout time.Duration `koanf:"save_timeout"`
}

// SecurityConfig holds CORS and inbound rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
