// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs the long-lived parts of CineMatch under a suture v4
supervisor tree.

The tree has three layers so a failure in one does not take the others down:

	RootSupervisor ("cinematch")
	├── SessionSupervisor ("session-layer")
	│   ├── SessionReaperService
	│   └── SnapshotGCService (badger store only)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocketHubService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog into the zerolog adapter in internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddSessionService(services.NewSessionReaperService(manager, time.Minute, log))
	tree.AddMessagingService(services.NewWebSocketHubService(hub, log).WithSessions(manager))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, log).WithSessions(manager))
	err = tree.Serve(ctx)

See the services subpackage for the individual wrappers.
*/
package supervisor
