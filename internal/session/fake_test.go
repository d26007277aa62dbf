// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/view"
)

// fakeClock fires timers only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// Advance moves the clock and runs every timer that became due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	keep := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.at.After(c.now):
			t.stopped = true
			due = append(due, t.f)
		default:
			keep = append(keep, t)
		}
	}
	c.timers = keep
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

// fakeClient answers from canned responses and records what it was asked.
type fakeClient struct {
	mu      sync.Mutex
	queries []string
	titles  []string
	filters []models.Filters
	err     error
}

func (c *fakeClient) Recommend(_ context.Context, title string, _ int) (*models.RecommendResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.titles = append(c.titles, title)
	if c.err != nil {
		return nil, c.err
	}
	return &models.RecommendResponse{
		Success:         true,
		InputMovie:      title,
		Recommendations: []models.Movie{{Title: "Chak De! India"}, {Title: "Sultan"}},
	}, nil
}

func (c *fakeClient) Autocomplete(_ context.Context, query string, _ int) (*models.AutocompleteResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	return &models.AutocompleteResponse{Suggestions: []string{"Dangal", "Dangal 2"}}, nil
}

func (c *fakeClient) Filter(_ context.Context, f models.Filters) (*models.FilterResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = append(c.filters, f)
	if c.err != nil {
		return nil, c.err
	}
	return &models.FilterResponse{Success: true, Movies: []models.Movie{{Title: "3 Idiots"}}}, nil
}

func (c *fakeClient) Stats(_ context.Context) (*models.StatsResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &models.StatsResponse{Success: true, Stats: &models.Stats{
		TotalMovies: models.NumberScalar(1200),
		Languages:   map[string]models.Scalar{"Hindi": models.NumberScalar(800), "Tamil": models.NumberScalar(400)},
	}}, nil
}

func (c *fakeClient) autocompleteQueries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

// recordingSink collects patches. It fails every send when broken is set and
// the next failNext sends otherwise.
type recordingSink struct {
	mu       sync.Mutex
	patches  []Patch
	broken   bool
	failNext int
}

func (r *recordingSink) Send(p []Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.broken {
		return errors.New("sink closed")
	}
	if r.failNext > 0 {
		r.failNext--
		return errors.New("send buffer full")
	}
	r.patches = append(r.patches, p...)
	return nil
}

func (r *recordingSink) all() []Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Patch(nil), r.patches...)
}

func newTestDeps(t *testing.T, client *fakeClient, clock *fakeClock) Deps {
	t.Helper()
	renderer, err := view.NewRenderer(view.DefaultOptions())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return Deps{
		Controller: controller.New(controller.DefaultOptions()),
		Renderer:   renderer,
		Client:     client,
		Clock:      clock,
	}
}

// settle waits for every upstream call the session started.
func settle(s *Session) {
	s.calls.Wait()
}

func patchFor(patches []Patch, op PatchOp, target string) (Patch, bool) {
	for i := len(patches) - 1; i >= 0; i-- {
		if patches[i].Op == op && (target == "" || patches[i].Target == target) {
			return patches[i], true
		}
	}
	return Patch{}, false
}
