// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinematch/config.yaml",
	"/etc/cinematch/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultPlaceholderPoster is shown when a movie has no poster.
const DefaultPlaceholderPoster = "https://via.placeholder.com/300x450/333/fff?text=No+Poster"

// sliceConfigPaths lists keys that accept comma separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Upstream: UpstreamConfig{
			BaseURL:   "http://localhost:5000",
			Timeout:   30 * time.Second,
			RateLimit: 50,
			RateBurst: 20,
			Breaker: BreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		UI: UIConfig{
			RecommendationCount:  10,
			AutocompleteLimit:    5,
			AutocompleteMinChars: 2,
			AutocompleteDebounce: 300 * time.Millisecond,
			DropdownHideDelay:    200 * time.Millisecond,
			PlaceholderPoster:    DefaultPlaceholderPoster,
			Title:                "Indian Movie Recommender",
		},
		Cache: CacheConfig{
			StatsTTL:               5 * time.Minute,
			AutocompleteTTL:        time.Minute,
			AutocompleteMaxEntries: 10000,
		},
		Session: SessionConfig{
			Store:        "memory",
			IdleTimeout:  30 * time.Minute,
			SnapshotTTL:  24 * time.Hour,
			ReapInterval: time.Minute,
			OutboxSize:   64,
			SaveTimeout:  5 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf builds a Config from defaults, an optional YAML file and the
// environment, in that order of precedence.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// processSliceFields splits comma separated env values into slices. Values
// that came from YAML are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		str, ok := k.Get(path).(string)
		if !ok || str == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(str, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Upstream engine
	"recommender_url":              "upstream.base_url",
	"recommender_timeout":          "upstream.timeout",
	"recommender_rate_limit":       "upstream.rate_limit",
	"recommender_rate_burst":       "upstream.rate_burst",
	"recommender_breaker_enabled":  "upstream.breaker.enabled",
	"recommender_breaker_max_reqs": "upstream.breaker.max_requests",
	"recommender_breaker_interval": "upstream.breaker.interval",
	"recommender_breaker_timeout":  "upstream.breaker.timeout",
	"recommender_breaker_min_reqs": "upstream.breaker.min_requests",
	"recommender_breaker_ratio":    "upstream.breaker.failure_ratio",

	// UI
	"recommendation_count":   "ui.recommendation_count",
	"autocomplete_limit":     "ui.autocomplete_limit",
	"autocomplete_min_chars": "ui.autocomplete_min_chars",
	"autocomplete_debounce":  "ui.autocomplete_debounce",
	"dropdown_hide_delay":    "ui.dropdown_hide_delay",
	"placeholder_poster":     "ui.placeholder_poster",
	"ui_title":               "ui.title",

	// Cache
	"stats_cache_ttl":                "cache.stats_ttl",
	"autocomplete_cache_ttl":         "cache.autocomplete_ttl",
	"autocomplete_cache_max_entries": "cache.autocomplete_max_entries",

	// Sessions
	"session_store":         "session.store",
	"session_store_path":    "session.store_path",
	"session_redis_addr":    "session.redis_addr",
	"session_idle_timeout":  "session.idle_timeout",
	"session_snapshot_ttl":  "session.snapshot_ttl",
	"session_reap_interval": "session.reap_interval",
	"session_outbox_size":   "session.outbox_size",
	"session_cookie_secure": "session.cookie_secure",
	"session_save_timeout":  "session.save_timeout",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
