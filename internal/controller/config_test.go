// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package controller

import (
	"testing"
	"time"

	"github.com/tomtom215/cinematch/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	got := OptionsFromConfig(config.UIConfig{
		RecommendationCount:  20,
		AutocompleteLimit:    8,
		AutocompleteMinChars: 3,
		AutocompleteDebounce: time.Second,
		DropdownHideDelay:    time.Millisecond,
	})
	want := Options{
		RecommendationCount:  20,
		AutocompleteLimit:    8,
		AutocompleteMinChars: 3,
		AutocompleteDebounce: time.Second,
		DropdownHideDelay:    time.Millisecond,
	}
	if got != want {
		t.Errorf("OptionsFromConfig = %+v, want %+v", got, want)
	}

	// zero values fall back to the defaults once passed to New
	if New(OptionsFromConfig(config.UIConfig{})).Options() != DefaultOptions() {
		t.Error("empty ui config did not yield default options")
	}
}
