// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services adapts CineMatch components to suture.Service.

Each wrapper translates a component's lifecycle (ListenAndServe/Shutdown,
RunWithContext, periodic housekeeping) into suture's Serve(ctx) pattern and
names itself through fmt.Stringer for supervisor logs.

# Available Services

HTTPServerService wraps *http.Server with graceful shutdown.

WebSocketHubService delegates to the hub's RunWithContext.

SessionReaperService evicts idle detached sessions on a ticker.

SnapshotGCService reclaims badger value log space on a ticker.
*/
package services
