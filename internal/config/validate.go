// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateUpstream,
		c.validateUI,
		c.validateCache,
		c.validateSession,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateUpstream() error {
	if err := validateHTTPURL(c.Upstream.BaseURL, "RECOMMENDER_URL"); err != nil {
		return err
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("RECOMMENDER_TIMEOUT must be positive")
	}
	if c.Upstream.RateLimit < 0 {
		return fmt.Errorf("RECOMMENDER_RATE_LIMIT must not be negative, got %v", c.Upstream.RateLimit)
	}
	if c.Upstream.RateLimit > 0 && c.Upstream.RateBurst < 1 {
		return fmt.Errorf("RECOMMENDER_RATE_BURST must be at least 1 when rate limiting, got %d", c.Upstream.RateBurst)
	}

	b := c.Upstream.Breaker
	if !b.Enabled {
		return nil
	}
	if b.MaxRequests == 0 {
		return errors.New("RECOMMENDER_BREAKER_MAX_REQS must be at least 1")
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("RECOMMENDER_BREAKER_RATIO must be in (0, 1], got %v", b.FailureRatio)
	}
	if b.Timeout <= 0 {
		return errors.New("RECOMMENDER_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateUI() error {
	if c.UI.RecommendationCount < 1 || c.UI.RecommendationCount > 100 {
		return fmt.Errorf("RECOMMENDATION_COUNT must be between 1 and 100, got %d", c.UI.RecommendationCount)
	}
	if c.UI.AutocompleteLimit < 1 || c.UI.AutocompleteLimit > 50 {
		return fmt.Errorf("AUTOCOMPLETE_LIMIT must be between 1 and 50, got %d", c.UI.AutocompleteLimit)
	}
	if c.UI.AutocompleteMinChars < 1 {
		return fmt.Errorf("AUTOCOMPLETE_MIN_CHARS must be at least 1, got %d", c.UI.AutocompleteMinChars)
	}
	if c.UI.AutocompleteDebounce < 0 || c.UI.DropdownHideDelay < 0 {
		return errors.New("AUTOCOMPLETE_DEBOUNCE and DROPDOWN_HIDE_DELAY must not be negative")
	}
	if c.UI.PlaceholderPoster == "" {
		return errors.New("PLACEHOLDER_POSTER is required")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.StatsTTL < 0 || c.Cache.AutocompleteTTL < 0 {
		return errors.New("cache TTLs must not be negative")
	}
	if c.Cache.AutocompleteTTL > 0 && c.Cache.AutocompleteMaxEntries < 1 {
		return fmt.Errorf("AUTOCOMPLETE_CACHE_MAX_ENTRIES must be at least 1, got %d", c.Cache.AutocompleteMaxEntries)
	}
	return nil
}

func (c *Config) validateSession() error {
	switch c.Session.Store {
	case "memory", "badger":
	case "redis":
		if c.Session.RedisAddr == "" {
			return errors.New("SESSION_REDIS_ADDR is required for the redis session store")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be memory, badger or redis, got %q", c.Session.Store)
	}
	if c.Session.IdleTimeout <= 0 {
		return errors.New("SESSION_IDLE_TIMEOUT must be positive")
	}
	if c.Session.ReapInterval <= 0 {
		return errors.New("SESSION_REAP_INTERVAL must be positive")
	}
	if c.Session.SaveTimeout <= 0 {
		return errors.New("SESSION_SAVE_TIMEOUT must be positive")
	}
	if c.Session.OutboxSize < 1 {
		return fmt.Errorf("SESSION_OUTBOX_SIZE must be at least 1, got %d", c.Session.OutboxSize)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// HasWildcardCORS reports whether any CORS origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// validateHTTPURL checks that rawURL is an absolute http(s) URL without query.
// A path prefix is allowed so the engine can live behind a reverse proxy.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, u.RawQuery)
	}
	return nil
}
