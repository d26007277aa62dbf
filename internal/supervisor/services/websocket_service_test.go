// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	ws "github.com/tomtom215/cinematch/internal/websocket"
)

var _ ContextHub = (*ws.Hub)(nil)

type failingHub struct{ err error }

func (h failingHub) RunWithContext(context.Context) error { return h.err }

func (failingHub) GetClientCount() int { return 0 }

type sessionCount int

func (n sessionCount) Len() int { return int(n) }

func TestWebSocketHubService_Serve(t *testing.T) {
	svc := NewWebSocketHubService(ws.NewHub(), zerolog.Nop())
	if svc.String() != "websocket-hub" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve = %v, want context.DeadlineExceeded", err)
	}
}

func TestWebSocketHubService_PropagatesErrors(t *testing.T) {
	want := errors.New("hub failed")
	svc := NewWebSocketHubService(failingHub{err: want}, zerolog.Nop())
	if err := svc.Serve(context.Background()); !errors.Is(err, want) {
		t.Errorf("Serve = %v, want %v", err, want)
	}
}

func TestWebSocketHubService_UnderSupervisor(t *testing.T) {
	hub := ws.NewHub()
	sup := suture.New("test", suture.Spec{Timeout: time.Second})
	sup.Add(NewWebSocketHubService(hub, zerolog.Nop()).WithSessions(sessionCount(0)))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	if n := hub.GetClientCount(); n != 0 {
		t.Errorf("clients after shutdown = %d", n)
	}
}

func TestWebSocketHubService_ReportsDetachedSessions(t *testing.T) {
	var buf bytes.Buffer
	svc := NewWebSocketHubService(ws.NewHub(), zerolog.New(&buf)).WithSessions(sessionCount(3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
	out := buf.String()
	for _, want := range []string{`"service":"websocket-hub"`, `"detached_sessions":3`, `"clients":0`} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %s", out, want)
		}
	}
}
