// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"errors"
	"strings"
)

var (
	// ErrHubUnavailable is returned when /ws is hit before the hub is wired.
	ErrHubUnavailable = errors.New("websocket hub not available")

	// ErrMissingSession is returned when a request names no session.
	ErrMissingSession = errors.New("session id required")
)

// sanitizeLogValue strips control characters so request data cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	const maxLen = 200
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
