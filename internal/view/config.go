// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package view

import "github.com/tomtom215/cinematch/internal/config"

// OptionsFromConfig starts from DefaultOptions and applies the configured
// title and placeholder poster.
func OptionsFromConfig(ui config.UIConfig) Options {
	opts := DefaultOptions()
	if ui.Title != "" {
		opts.Title = ui.Title
	}
	if ui.PlaceholderPoster != "" {
		opts.PlaceholderPoster = ui.PlaceholderPoster
	}
	return opts
}
