// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommendapi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/models"
)

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestCircuitBreaker_OpensOnTransportFailures(t *testing.T) {
	fake := newCountingClient()
	fake.err = errors.New("connection refused")
	cbc := NewCircuitBreakerClient(fake, testBreakerConfig())

	for i := 0; i < 3; i++ {
		if _, err := cbc.Recommend(context.Background(), "Dangal", 10); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if !cbc.Open() || cbc.State() != "open" {
		t.Fatalf("State() = %s, want open", cbc.State())
	}

	_, err := cbc.Stats(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("err = %v, want ErrOpenState", err)
	}
	if fake.count(EndpointStats) != 0 {
		t.Error("open breaker should not reach the client")
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues(BreakerName)); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
}

func TestCircuitBreaker_AppErrorsDoNotTrip(t *testing.T) {
	fake := newCountingClient()
	fake.recommend = &models.RecommendResponse{Success: false, Error: "Movie not found"}
	cbc := NewCircuitBreakerClient(fake, testBreakerConfig())

	for i := 0; i < 5; i++ {
		resp, err := cbc.Recommend(context.Background(), "Nope", 10)
		if err != nil {
			t.Fatalf("call %d: err = %v", i, err)
		}
		if resp.Success {
			t.Fatal("expected success=false to pass through")
		}
	}
	if cbc.State() != "closed" {
		t.Errorf("State() = %s, want closed", cbc.State())
	}
}

func TestCircuitBreaker_CancelledContextDoesNotTrip(t *testing.T) {
	fake := newCountingClient()
	fake.err = context.Canceled
	cbc := NewCircuitBreakerClient(fake, testBreakerConfig())

	for i := 0; i < 5; i++ {
		if _, err := cbc.Autocomplete(context.Background(), "da", 5); !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v", err)
		}
	}
	if cbc.State() != "closed" {
		t.Errorf("State() = %s, want closed", cbc.State())
	}
}

func TestStateHelpers(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		str   string
		num   float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
	}
	for _, tt := range tests {
		if got := stateToString(tt.state); got != tt.str {
			t.Errorf("stateToString(%v) = %q", tt.state, got)
		}
		if got := stateToFloat(tt.state); got != tt.num {
			t.Errorf("stateToFloat(%v) = %v", tt.state, got)
		}
	}
}

func TestCastResult(t *testing.T) {
	if _, err := castResult[models.StatsResponse]("wrong", nil); err == nil {
		t.Error("expected type error")
	}
	want := &models.StatsResponse{Success: true}
	got, err := castResult[models.StatsResponse](want, nil)
	if err != nil || got != want {
		t.Errorf("castResult() = (%v, %v)", got, err)
	}
}
