// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package controller

import (
	"github.com/tomtom215/cinematch/internal/models"
)

// Event is an input to Update: a user action, a fired timer or an upstream
// result.
type Event interface {
	// EventName is a stable label for logs and metrics.
	EventName() string
}

// User actions.
type (
	// SearchSubmitted is the search button or Enter in the title input.
	SearchSubmitted struct{ Value string }
	// RetryRequested is the retry button on the error panel.
	RetryRequested struct{}
	// InputChanged fires on every edit of the title input.
	InputChanged struct{ Value string }
	// SuggestionSelected is a click on an autocomplete item.
	SuggestionSelected struct{ Value string }
	InputFocused       struct{}
	InputBlurred       struct{}
	EscapePressed      struct{}
	FiltersToggled     struct{}
	// FiltersApplied carries the raw control values; MinRating is the
	// unparsed rating select value.
	FiltersApplied struct {
		Language  string
		Genre     string
		MinRating string
	}
	ModalOpened struct{ Panel ModalPanel }
	// ModalClosed is the close button or a click on the backdrop.
	ModalClosed struct{}
	PageLoaded  struct{}
	// ServiceWorkerRegistered reports the outcome of the /sw.js registration.
	ServiceWorkerRegistered struct {
		OK     bool
		Detail string
	}
)

// Timers.
type (
	AutocompleteDue struct {
		Seq   uint64
		Query string
	}
	DropdownHideDue struct{}
)

// Upstream results. Err is set only for transport or decoding failures.
type (
	RecommendationsLoaded struct {
		Title    string
		Response *models.RecommendResponse
		Err      error
	}
	SuggestionsLoaded struct {
		Query    string
		Response *models.AutocompleteResponse
		Err      error
	}
	FilteredLoaded struct {
		Filters  models.Filters
		Response *models.FilterResponse
		Err      error
	}
	StatsLoaded struct {
		Response *models.StatsResponse
		Err      error
	}
)

func (SearchSubmitted) EventName() string         { return "search_submitted" }
func (RetryRequested) EventName() string          { return "retry_requested" }
func (InputChanged) EventName() string            { return "input_changed" }
func (SuggestionSelected) EventName() string      { return "suggestion_selected" }
func (InputFocused) EventName() string            { return "input_focused" }
func (InputBlurred) EventName() string            { return "input_blurred" }
func (EscapePressed) EventName() string           { return "escape_pressed" }
func (FiltersToggled) EventName() string          { return "filters_toggled" }
func (FiltersApplied) EventName() string          { return "filters_applied" }
func (ModalOpened) EventName() string             { return "modal_opened" }
func (ModalClosed) EventName() string             { return "modal_closed" }
func (PageLoaded) EventName() string              { return "page_loaded" }
func (ServiceWorkerRegistered) EventName() string { return "service_worker_registered" }
func (AutocompleteDue) EventName() string         { return "autocomplete_due" }
func (DropdownHideDue) EventName() string         { return "dropdown_hide_due" }
func (RecommendationsLoaded) EventName() string   { return "recommendations_loaded" }
func (SuggestionsLoaded) EventName() string       { return "suggestions_loaded" }
func (FilteredLoaded) EventName() string          { return "filtered_loaded" }
func (StatsLoaded) EventName() string             { return "stats_loaded" }
