// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package websocket

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
	"github.com/tomtom215/cinematch/internal/session"
	"github.com/tomtom215/cinematch/internal/validation"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBufferSize = 64
)

var (
	// ErrClientClosed is returned by Send after the connection is gone.
	ErrClientClosed = errors.New("websocket client closed")
	// ErrSendBufferFull is returned by Send when the writer has fallen behind.
	ErrSendBufferFull = errors.New("websocket send buffer full")
)

var clientIDCounter atomic.Uint64

// Session is the part of a session a connection drives.
type Session interface {
	ID() string
	Dispatch(ev controller.Event) error
	Attach(sink session.Sink) error
	Detach(sink session.Sink)
}

// Client binds one WebSocket connection to one session.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	sess Session
	log  zerolog.Logger

	mu     sync.Mutex
	send   chan Message
	closed bool
}

// NewClient creates a client for conn. Call Start to begin serving it.
func NewClient(hub *Hub, conn *websocket.Conn, sess Session) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		sess: sess,
		log:  logging.WithComponent("websocket").With().Str("session_id", sess.ID()).Logger(),
		send: make(chan Message, sendBufferSize),
	}
}

// ID returns the client's unique identifier.
func (c *Client) ID() uint64 {
	return c.id
}

// Send queues patches for the browser without blocking. It implements
// session.Sink.
func (c *Client) Send(patches []session.Patch) error {
	return c.queue(Message{Type: MessageTypePatches, Data: patches})
}

func (c *Client) queue(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.send <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// close stops the writer. Safe to call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Start registers the client, makes it the session's sink and starts the
// pumps. Patches buffered by the session are queued first.
func (c *Client) Start() error {
	if !c.hub.register(c) {
		return ErrHubStopped
	}
	// Attach queues the session's backlog before any newer patch
	if err := c.sess.Attach(c); err != nil {
		c.hub.unregister(c)
		return err
	}

	go c.writePump()
	go c.readPump()
	return nil
}

// readPump decodes browser events and dispatches them to the session.
func (c *Client) readPump() {
	defer func() {
		c.sess.Detach(c)
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn().Err(err).Msg("unexpected websocket close error")
			}
			return
		}
		metrics.WSMessagesTotal.WithLabelValues("in").Inc()

		if !c.handle(data) {
			return
		}
	}
}

// handle processes one inbound frame. It returns false when the connection
// should be dropped.
func (c *Client) handle(data []byte) bool {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reject(validation.ErrorCode, "malformed message")
		return true
	}

	switch msg.Type {
	case MessageTypePing:
		_ = c.queue(Message{Type: MessageTypePong})
		return true
	case MessageTypeEvent:
	default:
		c.reject(validation.ErrorCode, "unknown message type")
		return true
	}

	ev, err := session.WireEvent{Event: msg.Event, Payload: msg.Payload}.Decode()
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.As(err, &verr):
			apiErr := verr.ToAPIError()
			c.reject(apiErr.Code, apiErr.Message)
		case errors.Is(err, session.ErrUnknownEvent):
			c.reject(ErrorCodeUnknownEvent, err.Error())
		default:
			c.reject(validation.ErrorCode, err.Error())
		}
		c.log.Debug().Err(err).Str("event", msg.Event).Msg("Rejected browser event")
		return true
	}

	if err := c.sess.Dispatch(ev); err != nil {
		if errors.Is(err, session.ErrSessionClosed) {
			c.reject(ErrorCodeSessionClosed, "session closed, reload the page")
			return false
		}
		c.log.Error().Err(err).Str("event", msg.Event).Msg("Dispatch failed")
	}
	return true
}

func (c *Client) reject(code, message string) {
	_ = c.queue(Message{Type: MessageTypeError, Data: ErrorData{Code: code, Message: message}})
}

// writePump writes queued messages and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.Error().Err(err).Msg("failed to set write deadline")
				return
			}
			if !ok {
				// closed by the hub
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(message)
			if err != nil {
				c.log.Error().Err(err).Str("type", message.Type).Msg("failed to encode message")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug().Err(err).Msg("failed to write message")
				return
			}
			metrics.WSMessagesTotal.WithLabelValues("out").Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
