// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package controller

import "github.com/tomtom215/cinematch/internal/config"

// OptionsFromConfig maps the ui config section to controller options.
func OptionsFromConfig(ui config.UIConfig) Options {
	return Options{
		RecommendationCount:  ui.RecommendationCount,
		AutocompleteLimit:    ui.AutocompleteLimit,
		AutocompleteMinChars: ui.AutocompleteMinChars,
		AutocompleteDebounce: ui.AutocompleteDebounce,
		DropdownHideDelay:    ui.DropdownHideDelay,
	}
}
