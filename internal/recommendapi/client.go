// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package recommendapi is the HTTP client for the recommendation engine.

The engine exposes four JSON endpoints:
  - POST /api/recommend     similar titles for one movie
  - GET  /api/autocomplete  title suggestions for a prefix
  - POST /api/filter        movies matching language, genre and rating
  - GET  /api/stats         dataset summary

The engine reports application failures (unknown title, bad filter) as a
4xx or 5xx response whose body still carries success=false and an error
message. Bodies are therefore decoded regardless of status. A returned error
means the call itself failed: the engine was unreachable, timed out or sent
something that is not the expected JSON. success=false is data, not an error.

Layers:
  - HTTPClient: transport, outbound rate limiting, decoding
  - CircuitBreakerClient: gobreaker in front of any Client
  - CachingClient: stats and autocomplete response caches
*/
package recommendapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

// Endpoint paths relative to the engine base URL.
const (
	PathRecommend    = "/api/recommend"
	PathAutocomplete = "/api/autocomplete"
	PathFilter       = "/api/filter"
	PathStats        = "/api/stats"
)

// Endpoint labels used in metrics and logs.
const (
	EndpointRecommend    = "recommend"
	EndpointAutocomplete = "autocomplete"
	EndpointFilter       = "filter"
	EndpointStats        = "stats"
)

const (
	// maxResponseSize bounds how much of a response body is decoded.
	maxResponseSize = 8 << 20
	// maxErrorBodySize bounds how much of an undecodable body is quoted in errors.
	maxErrorBodySize = 512
)

// ErrUnexpectedStatus is returned when a non-2xx response body cannot be
// decoded as an engine response.
var ErrUnexpectedStatus = errors.New("unexpected status from recommendation engine")

// Client is implemented by every layer of the engine client.
type Client interface {
	Recommend(ctx context.Context, title string, count int) (*models.RecommendResponse, error)
	Autocomplete(ctx context.Context, query string, limit int) (*models.AutocompleteResponse, error)
	Filter(ctx context.Context, filters models.Filters) (*models.FilterResponse, error)
	Stats(ctx context.Context) (*models.StatsResponse, error)
}

// HTTPClient talks to the engine over HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewHTTPClient builds a client from the upstream configuration. A zero
// RateLimit disables outbound limiting.
func NewHTTPClient(cfg config.UpstreamConfig) (*HTTPClient, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("upstream base url %q must be absolute", cfg.BaseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// Recommend asks for titles similar to title.
func (c *HTTPClient) Recommend(ctx context.Context, title string, count int) (*models.RecommendResponse, error) {
	body := models.RecommendRequest{MovieTitle: title, NumRecommendations: count}
	return call(ctx, c, EndpointRecommend, http.MethodPost, PathRecommend, nil, body,
		func(r *models.RecommendResponse) bool { return r.Success })
}

// Autocomplete returns at most limit title suggestions for query.
func (c *HTTPClient) Autocomplete(ctx context.Context, query string, limit int) (*models.AutocompleteResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	return call(ctx, c, EndpointAutocomplete, http.MethodGet, PathAutocomplete, q, nil,
		func(r *models.AutocompleteResponse) bool { return r.Error == "" })
}

// Filter returns movies matching filters. Unset fields are sent as null.
func (c *HTTPClient) Filter(ctx context.Context, filters models.Filters) (*models.FilterResponse, error) {
	return call(ctx, c, EndpointFilter, http.MethodPost, PathFilter, nil, filters.Request(),
		func(r *models.FilterResponse) bool { return r.Success })
}

// Stats returns the dataset summary.
func (c *HTTPClient) Stats(ctx context.Context) (*models.StatsResponse, error) {
	return call(ctx, c, EndpointStats, http.MethodGet, PathStats, nil, nil,
		func(r *models.StatsResponse) bool { return r.Success })
}

// call performs one request and decodes the body into T whatever the status.
// ok classifies the decoded response for metrics.
func call[T any](ctx context.Context, c *HTTPClient, endpoint, method, path string, query url.Values, body any, ok func(*T) bool) (*T, error) {
	start := time.Now()
	result, err := c.do(ctx, endpoint, method, path, query, body, new(T))
	duration := time.Since(start)

	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, metrics.OutcomeTransportError, duration)
		logging.Ctx(ctx).Warn().Err(err).Str("endpoint", endpoint).Dur("duration", duration).Msg("Recommendation engine call failed")
		return nil, err
	}

	typed, _ := result.(*T)
	outcome := metrics.OutcomeOK
	if !ok(typed) {
		outcome = metrics.OutcomeAppError
	}
	metrics.RecordUpstreamRequest(endpoint, outcome, duration)
	logging.Ctx(ctx).Debug().Str("endpoint", endpoint).Str("outcome", outcome).Dur("duration", duration).Msg("Recommendation engine call")
	return typed, nil
}

func (c *HTTPClient) do(ctx context.Context, endpoint, method, path string, query url.Values, body any, result any) (any, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limiter: %w", endpoint, err)
	}

	reqBody := io.Reader(http.NoBody)
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", endpoint, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", endpoint, err)
	}

	if err := json.Unmarshal(raw, result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%s: %w: %d: %s", endpoint, ErrUnexpectedStatus, resp.StatusCode, snippet(raw))
		}
		return nil, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return result, nil
}

func (c *HTTPClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	start := time.Now()
	err := c.limiter.Wait(ctx)
	metrics.UpstreamRateLimitWait.Observe(time.Since(start).Seconds())
	return err
}

// snippet quotes the start of an undecodable body for error messages.
func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorBodySize {
		return s[:maxErrorBodySize] + "... (truncated)"
	}
	if s == "" {
		return "(empty body)"
	}
	return s
}
