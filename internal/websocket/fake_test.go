// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/session"
)

// fakeSession records dispatched events and echoes each one back as a
// console patch through the attached sink.
type fakeSession struct {
	mu       sync.Mutex
	events   []controller.Event
	sink     session.Sink
	buffered []session.Patch
	closed   bool
	detached chan struct{}
}

func newFakeSession() *fakeSession {
	return &fakeSession{detached: make(chan struct{}, 1)}
}

func (f *fakeSession) ID() string { return "test-session" }

func (f *fakeSession) Dispatch(ev controller.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return session.ErrSessionClosed
	}
	f.events = append(f.events, ev)
	if f.sink != nil {
		_ = f.sink.Send([]session.Patch{{Op: session.OpConsole, Value: ev.EventName()}})
	}
	return nil
}

func (f *fakeSession) Attach(sink session.Sink) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return session.ErrSessionClosed
	}
	f.sink = sink
	if len(f.buffered) > 0 && sink.Send(f.buffered) == nil {
		f.buffered = nil
	}
	return nil
}

func (f *fakeSession) Detach(sink session.Sink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sink == sink {
		f.sink = nil
		select {
		case f.detached <- struct{}{}:
		default:
		}
	}
}

func (f *fakeSession) dispatched() []controller.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]controller.Event(nil), f.events...)
}

// serveSession starts a test server whose /ws endpoint binds every
// connection to sess.
func serveSession(t *testing.T, hub *Hub, sess Session) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		if err := NewClient(hub, conn, sess).Start(); err != nil {
			_ = conn.Close()
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readMessage reads one server message into a generic shape.
func readMessage(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return msg.Type, msg.Data
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("%s: timeout", msg)
}
