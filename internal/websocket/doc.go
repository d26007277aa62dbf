// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package websocket carries UI events and DOM patches between a browser tab and
its session.

Key Components:

  - Hub: registry of open connections, closed together on shutdown
  - Client: one connection bound to one session; it is the session's patch
    sink while connected
  - Message: the envelope for both directions

Protocol:

The browser sends events:

	{"type": "event", "event": "input_changed", "payload": {"value": "Dan"}}
	{"type": "ping"}

The server sends patches, errors and pongs:

	{"type": "patches", "data": [{"op": "html", "target": "region-panel", "html": "..."}]}
	{"type": "error", "data": {"code": "VALIDATION_ERROR", "message": "..."}}
	{"type": "pong"}

Patches buffered while the tab was disconnected are sent first after a
reconnect.

Each client has two goroutines:
  - readPump: decodes events and dispatches them to the session
  - writePump: writes queued messages and sends keepalive pings

Configuration:

  - writeWait: 10 seconds (time allowed to write a message)
  - pongWait: 60 seconds (time allowed to read a pong)
  - pingPeriod: 54 seconds (must be < pongWait)
  - maxMessageSize: 16 KB (events are small)

See Also:

  - internal/session: the runtime a Client feeds
  - internal/api: the /ws upgrade handler
*/
package websocket
