// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the CineMatch web server.

The server renders the movie recommendation page and runs its interaction
logic on the server side. Each browser tab owns a session; the tab sends
input events over a WebSocket (or REST fallback) and receives HTML patches
back. Recommendations, autocomplete, filtering and stats come from the
recommendation engine configured with RECOMMENDER_URL.

# Application Architecture

	RootSupervisor ("cinematch")
	├── SessionSupervisor ("session-layer")
	│   ├── Session reaper (idle detached sessions)
	│   └── Snapshot GC (badger store only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON/console output modes
 3. Upstream client: HTTP, circuit breaker and response caches
 4. Renderer and controller
 5. Snapshot store and session manager
 6. WebSocket hub
 7. HTTP router: chi with middleware stack
 8. Supervisor tree

# Configuration

Priority: Environment variables > Config file > Defaults

	HTTP_PORT=8080                      # listen port
	RECOMMENDER_URL=http://localhost:5000
	SESSION_STORE=memory                # memory, badger or redis
	SESSION_STORE_PATH=/data/sessions   # badger directory
	SESSION_REDIS_ADDR=redis://cache:6379/0
	SESSION_SAVE_TIMEOUT=5s             # bound on one snapshot write
	LOG_LEVEL=info                      # trace, debug, info, warn, error
	LOG_FORMAT=json                     # json or console

A YAML file is read from CONFIG_PATH, ./config.yaml or
/etc/cinematch/config.yaml.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains within
server.shutdown_timeout, WebSocket clients are closed, and every live session
is closed after its snapshot has been written.
*/
package main
