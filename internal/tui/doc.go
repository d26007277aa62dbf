// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package tui is a terminal front end for CineMatch built on Bubble Tea.
//
// It hosts the same controller as the web session runtime. Key presses become
// controller events. The returned effects become tea.Cmds: upstream fetches
// run as commands that yield the matching *Loaded event, and debounce and
// dropdown timers use tea.Tick. The screen is drawn from the view package's
// view-models, and modal panels are rendered as markdown with glamour.
package tui
