// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package controller

import (
	"github.com/tomtom215/cinematch/internal/models"
)

// Panel is the main content area. At most one of loading, error and results
// is visible; PanelIdle shows none of them.
type Panel int

const (
	PanelIdle Panel = iota
	PanelLoading
	PanelError
	PanelResults
)

func (p Panel) String() string {
	switch p {
	case PanelLoading:
		return "loading"
	case PanelError:
		return "error"
	case PanelResults:
		return "results"
	default:
		return "idle"
	}
}

// ResultsKind records which flow produced the current results.
type ResultsKind int

const (
	ResultsRecommendations ResultsKind = iota
	ResultsFiltered
)

// Results is the content of the results panel.
type Results struct {
	Kind    ResultsKind
	Heading string
	Movies  []models.Movie
}

// ModalPanel names a static information panel. The empty value means the
// modal is closed.
type ModalPanel string

const (
	ModalNone    ModalPanel = ""
	ModalAbout   ModalPanel = "about"
	ModalHelp    ModalPanel = "help"
	ModalContact ModalPanel = "contact"
)

// Valid reports whether p names a panel that can be opened.
func (p ModalPanel) Valid() bool {
	switch p {
	case ModalAbout, ModalHelp, ModalContact:
		return true
	}
	return false
}

// FilterForm holds the raw values of the filter controls so a re-render keeps
// the user's selection.
type FilterForm struct {
	Language  string `json:"language"`
	Genre     string `json:"genre"`
	MinRating string `json:"min_rating"`
}

// State is everything the page shows. It is a value: Update never mutates the
// slices it receives, it replaces them.
type State struct {
	Panel        Panel   `json:"panel"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Results      Results `json:"results"`
	SearchBusy   bool    `json:"search_busy"`

	Input string `json:"input"`

	// Suggestions survive hiding the dropdown, so focusing the input again
	// re-shows the last list.
	Suggestions     []string `json:"suggestions,omitempty"`
	DropdownVisible bool     `json:"dropdown_visible"`

	// AutocompleteSeq identifies the most recently scheduled lookup. A due
	// lookup carrying an older number was superseded.
	AutocompleteSeq     uint64 `json:"autocomplete_seq"`
	AutocompletePending bool   `json:"autocomplete_pending"`

	FiltersVisible bool       `json:"filters_visible"`
	FilterForm     FilterForm `json:"filter_form"`

	Stats *models.Stats `json:"stats,omitempty"`

	Modal        ModalPanel `json:"modal,omitempty"`
	ScrollLocked bool       `json:"scroll_locked"`
}
