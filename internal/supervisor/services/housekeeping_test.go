// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingReaper struct {
	calls atomic.Int32
}

func (r *countingReaper) Reap() int {
	r.calls.Add(1)
	return 1
}

func (r *countingReaper) Len() int { return 0 }

type countingGC struct {
	calls atomic.Int32
	ratio atomic.Value
	err   error
}

func (g *countingGC) RunGC(ratio float64) (int, error) {
	g.calls.Add(1)
	g.ratio.Store(ratio)
	return 0, g.err
}

func runFor(t *testing.T, serve func(context.Context) error, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve = %v, want context.DeadlineExceeded", err)
	}
}

func TestSessionReaperService(t *testing.T) {
	reaper := &countingReaper{}
	svc := NewSessionReaperService(reaper, 10*time.Millisecond, zerolog.New(io.Discard))
	if svc.String() != "session-reaper" {
		t.Errorf("String() = %q", svc.String())
	}

	runFor(t, svc.Serve, 100*time.Millisecond)
	if reaper.calls.Load() < 2 {
		t.Errorf("Reap called %d times, want at least 2", reaper.calls.Load())
	}

	if got := NewSessionReaperService(reaper, 0, zerolog.Nop()).interval; got != time.Minute {
		t.Errorf("default interval = %v", got)
	}
}

func TestSnapshotGCService(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"errors keep the loop alive", errors.New("gc failed")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc := &countingGC{err: tt.err}
			svc := NewSnapshotGCService(gc, 10*time.Millisecond, zerolog.Nop())

			runFor(t, svc.Serve, 100*time.Millisecond)
			if gc.calls.Load() < 2 {
				t.Errorf("RunGC called %d times, want at least 2", gc.calls.Load())
			}
			if ratio, _ := gc.ratio.Load().(float64); ratio != DefaultDiscardRatio {
				t.Errorf("discard ratio = %v", ratio)
			}
		})
	}

	if got := NewSnapshotGCService(&countingGC{}, 0, zerolog.Nop()).interval; got != 10*time.Minute {
		t.Errorf("default interval = %v", got)
	}
}
