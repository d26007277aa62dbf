// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package session

// PatchOp is a DOM operation understood by the browser glue script.
type PatchOp string

const (
	// OpHTML replaces the inner HTML of Target.
	OpHTML PatchOp = "html"
	// OpValue sets the value of the input Target.
	OpValue PatchOp = "value"
	// OpScroll smoothly scrolls Target into view.
	OpScroll PatchOp = "scroll"
	// OpScrollLock locks (On) or restores page scrolling.
	OpScrollLock PatchOp = "scroll-lock"
	// OpClass adds (On) or removes the class Value on Target.
	OpClass PatchOp = "class"
	// OpConsole writes Value to the browser console at Level.
	OpConsole PatchOp = "console"
)

// DOM ids the runtime addresses directly.
const (
	TargetInput        = "movieInput"
	TargetSearchButton = "searchBtn"
	TargetResults      = "resultsSection"
	ClassSearchBusy    = "loading"
)

// Patch is one DOM update pushed to the browser.
type Patch struct {
	Op     PatchOp `json:"op"`
	Target string  `json:"target,omitempty"`
	HTML   string  `json:"html,omitempty"`
	Value  string  `json:"value,omitempty"`
	On     bool    `json:"on,omitempty"`
	Level  string  `json:"level,omitempty"`
}

// Sink receives patches for a session, normally a WebSocket client. Send is
// called with the session lock held and must not block.
type Sink interface {
	Send(patches []Patch) error
}
