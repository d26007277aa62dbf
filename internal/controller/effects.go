// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package controller

import (
	"time"

	"github.com/tomtom215/cinematch/internal/models"
)

// Effect is an instruction for the runtime. Effects are plain data.
type Effect interface {
	EffectName() string
}

// Region is an independently rendered part of the page.
type Region string

const (
	RegionPanel       Region = "panel"
	RegionSuggestions Region = "suggestions"
	RegionFilters     Region = "filters"
	RegionStats       Region = "stats"
	RegionModal       Region = "modal"
)

// Regions lists every region in page order.
var Regions = []Region{RegionStats, RegionSuggestions, RegionFilters, RegionPanel, RegionModal}

// LogLevel of a Log effect.
type LogLevel string

const (
	LogInfo  LogLevel = "info"
	LogError LogLevel = "error"
)

type (
	// Render asks for a region to be redrawn from the new state.
	Render struct{ Region Region }
	// SetInput overwrites the title input's value.
	SetInput struct{ Value string }
	// ScrollIntoView smoothly scrolls the results panel into view.
	ScrollIntoView struct{ Region Region }
	// LockScroll toggles page scrolling behind the modal.
	LockScroll struct{ Locked bool }

	// ScheduleAutocomplete starts the debounce timer. When it fires the
	// runtime dispatches AutocompleteDue with the same Seq and Query.
	ScheduleAutocomplete struct {
		Seq   uint64
		Query string
		Delay time.Duration
	}
	// CancelAutocomplete stops any pending debounce timer.
	CancelAutocomplete struct{}
	// ScheduleDropdownHide dispatches DropdownHideDue after Delay.
	ScheduleDropdownHide struct{ Delay time.Duration }

	FetchRecommendations struct {
		Title string
		Count int
	}
	FetchSuggestions struct {
		Query string
		Limit int
	}
	FetchFiltered struct{ Filters models.Filters }
	FetchStats    struct{}

	// Log is a diagnostic for the developer console; the user never sees it.
	Log struct {
		Level   LogLevel
		Message string
		Err     error
	}
)

func (Render) EffectName() string               { return "render" }
func (SetInput) EffectName() string             { return "set_input" }
func (ScrollIntoView) EffectName() string       { return "scroll_into_view" }
func (LockScroll) EffectName() string           { return "lock_scroll" }
func (ScheduleAutocomplete) EffectName() string { return "schedule_autocomplete" }
func (CancelAutocomplete) EffectName() string   { return "cancel_autocomplete" }
func (ScheduleDropdownHide) EffectName() string { return "schedule_dropdown_hide" }
func (FetchRecommendations) EffectName() string { return "fetch_recommendations" }
func (FetchSuggestions) EffectName() string     { return "fetch_suggestions" }
func (FetchFiltered) EffectName() string        { return "fetch_filtered" }
func (FetchStats) EffectName() string           { return "fetch_stats" }
func (Log) EffectName() string                  { return "log" }
