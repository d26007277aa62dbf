// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200"))

	RecordAPIRequest("GET", "/api/v1/health", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200"))
	if after-before != 1 {
		t.Errorf("APIRequestsTotal delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	start := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests) - start; got != 2 {
		t.Errorf("active delta = %v, want 2", got)
	}
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != start {
		t.Errorf("active = %v, want %v", got, start)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	tests := []struct {
		endpoint string
		outcome  string
	}{
		{"recommend", OutcomeOK},
		{"recommend", OutcomeAppError},
		{"stats", OutcomeTransportError},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint+"/"+tt.outcome, func(t *testing.T) {
			c := UpstreamRequestsTotal.WithLabelValues(tt.endpoint, tt.outcome)
			before := testutil.ToFloat64(c)
			RecordUpstreamRequest(tt.endpoint, tt.outcome, 20*time.Millisecond)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("stats"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("stats"))

	RecordCacheLookup("stats", true)
	RecordCacheLookup("stats", false)
	RecordCacheLookup("stats", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("stats")) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("stats")) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordUIEventAndEffect(t *testing.T) {
	ev := testutil.ToFloat64(UIEventsTotal.WithLabelValues("search_submitted"))
	ef := testutil.ToFloat64(UIEffectsTotal.WithLabelValues("fetch_recommendations"))

	RecordUIEvent("search_submitted")
	RecordUIEffect("fetch_recommendations")

	if testutil.ToFloat64(UIEventsTotal.WithLabelValues("search_submitted"))-ev != 1 {
		t.Error("event counter not incremented")
	}
	if testutil.ToFloat64(UIEffectsTotal.WithLabelValues("fetch_recommendations"))-ef != 1 {
		t.Error("effect counter not incremented")
	}
}
