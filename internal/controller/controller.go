// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package controller holds the interaction logic of the page as a pure state
// machine.
//
// Update takes the current State and one Event and returns the next State
// plus the Effects a runtime must carry out: render a region, start or stop
// a timer, call the recommendation engine, log. Update performs no I/O and
// reads no clock, so every behaviour is testable by feeding events and
// inspecting the result. Upstream responses come back in as events.
//
// The main panel follows
//
//	idle -> loading -> (results | error) -> loading ...
//
// Responses are applied in the order they arrive and nothing is cancelled
// once requested, so a slow search can overwrite a newer one.
package controller

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/validation"
)

// MaxTitleLength is the longest title, in runes after trimming, sent to
// the engine.
const MaxTitleLength = 200

// User-facing messages.
const (
	MsgEmptyTitle          = "Please enter a movie title"
	MsgTitleTooLong        = "Movie title is too long (maximum 200 characters)"
	MsgNoFilter            = "Please select at least one filter"
	MsgRecommendFailed     = "Failed to get recommendations"
	MsgFilterFailed        = "Failed to get filtered movies"
	MsgNetworkError        = "Network error. Please check your connection and try again."
	RecommendationsHeading = "🎯 Recommendations for \"%s\""
	FilteredHeading        = "🔍 Movies matching: %s"
)

// Options are the interaction constants.
type Options struct {
	RecommendationCount  int
	AutocompleteLimit    int
	AutocompleteMinChars int
	AutocompleteDebounce time.Duration
	DropdownHideDelay    time.Duration
}

// DefaultOptions returns the standard interaction constants.
func DefaultOptions() Options {
	return Options{
		RecommendationCount:  10,
		AutocompleteLimit:    5,
		AutocompleteMinChars: 2,
		AutocompleteDebounce: 300 * time.Millisecond,
		DropdownHideDelay:    200 * time.Millisecond,
	}
}

// Controller maps (State, Event) to (State, []Effect). It holds only
// immutable options and is safe to share.
type Controller struct {
	opts Options
}

// New returns a controller using opts. Zero fields fall back to
// DefaultOptions.
func New(opts Options) *Controller {
	def := DefaultOptions()
	if opts.RecommendationCount <= 0 {
		opts.RecommendationCount = def.RecommendationCount
	}
	if opts.AutocompleteLimit <= 0 {
		opts.AutocompleteLimit = def.AutocompleteLimit
	}
	if opts.AutocompleteMinChars <= 0 {
		opts.AutocompleteMinChars = def.AutocompleteMinChars
	}
	if opts.AutocompleteDebounce <= 0 {
		opts.AutocompleteDebounce = def.AutocompleteDebounce
	}
	if opts.DropdownHideDelay <= 0 {
		opts.DropdownHideDelay = def.DropdownHideDelay
	}
	return &Controller{opts: opts}
}

// Options returns the controller's interaction constants.
func (c *Controller) Options() Options {
	return c.opts
}

// Update applies one event.
func (c *Controller) Update(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case SearchSubmitted:
		s.Input = e.Value
		return c.search(s)
	case RetryRequested:
		return c.search(s)
	case RecommendationsLoaded:
		return c.recommendationsLoaded(s, e)

	case InputChanged:
		return c.inputChanged(s, e)
	case AutocompleteDue:
		if !s.AutocompletePending || e.Seq != s.AutocompleteSeq {
			return s, nil
		}
		s.AutocompletePending = false
		return s, []Effect{FetchSuggestions{Query: e.Query, Limit: c.opts.AutocompleteLimit}}
	case SuggestionsLoaded:
		return suggestionsLoaded(s, e)
	case SuggestionSelected:
		return c.suggestionSelected(s, e)
	case InputFocused:
		if len(s.Suggestions) == 0 || s.DropdownVisible {
			return s, nil
		}
		s.DropdownVisible = true
		return s, []Effect{Render{RegionSuggestions}}
	case InputBlurred:
		return s, []Effect{ScheduleDropdownHide{Delay: c.opts.DropdownHideDelay}}
	case DropdownHideDue:
		return hideDropdown(s)
	case EscapePressed:
		var closeFx, hideFx []Effect
		s, closeFx = closeModal(s)
		s, hideFx = hideDropdown(s)
		return s, append(closeFx, hideFx...)

	case FiltersToggled:
		s.FiltersVisible = !s.FiltersVisible
		return s, []Effect{Render{RegionFilters}}
	case FiltersApplied:
		return c.applyFilters(s, e)
	case FilteredLoaded:
		return filteredLoaded(s, e)

	case PageLoaded:
		return s, []Effect{FetchStats{}, Log{Level: LogInfo, Message: "🎬 CineMatch initialized successfully!"}}
	case StatsLoaded:
		return statsLoaded(s, e)

	case ModalOpened:
		if !e.Panel.Valid() {
			return s, []Effect{Log{Level: LogError, Message: fmt.Sprintf("Unknown panel %q", e.Panel)}}
		}
		s.Modal = e.Panel
		s.ScrollLocked = true
		return s, []Effect{Render{RegionModal}, LockScroll{Locked: true}}
	case ModalClosed:
		return closeModal(s)

	case ServiceWorkerRegistered:
		if e.OK {
			return s, []Effect{Log{Level: LogInfo, Message: "SW registered: " + e.Detail}}
		}
		return s, []Effect{Log{Level: LogInfo, Message: "SW registration failed: " + e.Detail}}
	}
	return s, nil
}

func (c *Controller) search(s State) (State, []Effect) {
	title := strings.TrimSpace(s.Input)
	if title == "" {
		return showError(s, MsgEmptyTitle)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return showError(s, MsgTitleTooLong)
	}
	s, fx := showLoading(s)
	return s, append(fx, FetchRecommendations{Title: title, Count: c.opts.RecommendationCount})
}

func (c *Controller) recommendationsLoaded(s State, e RecommendationsLoaded) (State, []Effect) {
	if e.Err != nil || e.Response == nil {
		s, fx := showError(s, MsgNetworkError)
		return s, append(fx, Log{Level: LogError, Message: "Search error", Err: e.Err})
	}
	if !e.Response.Success {
		return showError(s, fallback(e.Response.Error, MsgRecommendFailed))
	}
	return showResults(s, Results{
		Kind:    ResultsRecommendations,
		Heading: fmt.Sprintf(RecommendationsHeading, e.Response.InputMovie),
		Movies:  e.Response.Recommendations,
	})
}

func (c *Controller) inputChanged(s State, e InputChanged) (State, []Effect) {
	s.Input = e.Value
	s.AutocompleteSeq++
	s.AutocompletePending = false
	fx := []Effect{CancelAutocomplete{}}

	if utf8.RuneCountInString(e.Value) < c.opts.AutocompleteMinChars {
		s, hideFx := hideDropdown(s)
		return s, append(fx, hideFx...)
	}

	s.AutocompletePending = true
	return s, append(fx, ScheduleAutocomplete{
		Seq:   s.AutocompleteSeq,
		Query: e.Value,
		Delay: c.opts.AutocompleteDebounce,
	})
}

func suggestionsLoaded(s State, e SuggestionsLoaded) (State, []Effect) {
	if e.Err != nil || e.Response == nil {
		s, fx := hideDropdown(s)
		return s, append(fx, Log{Level: LogError, Message: "Autocomplete error", Err: e.Err})
	}
	if len(e.Response.Suggestions) == 0 {
		return hideDropdown(s)
	}
	s.Suggestions = append([]string(nil), e.Response.Suggestions...)
	s.DropdownVisible = true
	return s, []Effect{Render{RegionSuggestions}}
}

func (c *Controller) suggestionSelected(s State, e SuggestionSelected) (State, []Effect) {
	s.Input = e.Value
	s.DropdownVisible = false
	fx := []Effect{SetInput{Value: e.Value}, Render{RegionSuggestions}}
	s, searchFx := c.search(s)
	return s, append(fx, searchFx...)
}

func (c *Controller) applyFilters(s State, e FiltersApplied) (State, []Effect) {
	s.FilterForm = FilterForm{Language: e.Language, Genre: e.Genre, MinRating: e.MinRating}

	filters := models.Filters{Language: e.Language, Genre: e.Genre}
	// an unparsable rating counts as unset
	if rating, ok, err := validation.ParseRating(e.MinRating); err == nil && ok {
		filters.MinRating = &rating
	}

	if filters.Empty() {
		return showError(s, MsgNoFilter)
	}
	s, fx := showLoading(s)
	return s, append(fx, FetchFiltered{Filters: filters})
}

func filteredLoaded(s State, e FilteredLoaded) (State, []Effect) {
	if e.Err != nil || e.Response == nil {
		s, fx := showError(s, MsgNetworkError)
		return s, append(fx, Log{Level: LogError, Message: "Filter error", Err: e.Err})
	}
	if !e.Response.Success {
		return showError(s, fallback(e.Response.Error, MsgFilterFailed))
	}
	return showResults(s, Results{
		Kind:    ResultsFiltered,
		Heading: fmt.Sprintf(FilteredHeading, e.Filters.Summary()),
		Movies:  e.Response.Movies,
	})
}

func statsLoaded(s State, e StatsLoaded) (State, []Effect) {
	switch {
	case e.Err != nil:
		return s, []Effect{Log{Level: LogError, Message: "Stats loading error", Err: e.Err}}
	case e.Response == nil || !e.Response.Success:
		return s, nil
	case e.Response.Stats == nil:
		return s, []Effect{Log{Level: LogError, Message: "Stats loading error: response carried no stats"}}
	}
	s.Stats = e.Response.Stats
	return s, []Effect{Render{RegionStats}}
}

// Panel transitions. Each one replaces the previous panel outright, which is
// what "hide all three, then show one" amounts to.

func showLoading(s State) (State, []Effect) {
	s.Panel = PanelLoading
	s.ErrorMessage = ""
	s.SearchBusy = true
	return s, []Effect{Render{RegionPanel}}
}

func showError(s State, msg string) (State, []Effect) {
	s.Panel = PanelError
	s.ErrorMessage = msg
	s.SearchBusy = false
	return s, []Effect{Render{RegionPanel}}
}

func showResults(s State, r Results) (State, []Effect) {
	s.Panel = PanelResults
	s.ErrorMessage = ""
	s.Results = r
	s.SearchBusy = false
	return s, []Effect{Render{RegionPanel}, ScrollIntoView{Region: RegionPanel}}
}

func hideDropdown(s State) (State, []Effect) {
	if !s.DropdownVisible {
		return s, nil
	}
	s.DropdownVisible = false
	return s, []Effect{Render{RegionSuggestions}}
}

func closeModal(s State) (State, []Effect) {
	wasOpen := s.Modal != ModalNone
	s.Modal = ModalNone
	s.ScrollLocked = false
	fx := []Effect{LockScroll{Locked: false}}
	if wasOpen {
		fx = append([]Effect{Render{RegionModal}}, fx...)
	}
	return s, fx
}

func fallback(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
