// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/tomtom215/cinematch/internal/controller"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// RegionID is the DOM id of the element wrapping a region.
func RegionID(r controller.Region) string {
	return "region-" + string(r)
}

// PageView is the data for the full page shell.
type PageView struct {
	Title        string
	SessionID    string
	Input        string
	ScrollLocked bool
	Stats        StatsView
	Suggestions  SuggestionsView
	Filters      FiltersView
	Panel        PanelView
	Modal        ModalView
}

// Renderer executes the page and region templates. It is safe for
// concurrent use.
type Renderer struct {
	tmpl *template.Template
	opts Options
}

// NewRenderer parses the embedded templates.
func NewRenderer(opts Options) (*Renderer, error) {
	def := DefaultOptions()
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.PlaceholderPoster == "" {
		opts.PlaceholderPoster = def.PlaceholderPoster
	}
	if opts.Languages == nil {
		opts.Languages = def.Languages
	}
	if opts.Genres == nil {
		opts.Genres = def.Genres
	}
	if opts.Ratings == nil {
		opts.Ratings = def.Ratings
	}

	tmpl, err := template.New("cinematch").ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, opts: opts}, nil
}

// Options returns the effective content options.
func (r *Renderer) Options() Options {
	return r.opts
}

// Region renders the inner HTML of one region.
func (r *Renderer) Region(region controller.Region, s controller.State) (string, error) {
	var data any
	switch region {
	case controller.RegionPanel:
		data = BuildPanel(s, r.opts)
	case controller.RegionSuggestions:
		data = BuildSuggestions(s)
	case controller.RegionFilters:
		data = BuildFilters(s, r.opts)
	case controller.RegionStats:
		data = BuildStats(s.Stats)
	case controller.RegionModal:
		data = BuildModal(s, r.opts)
	default:
		return "", fmt.Errorf("unknown region %q", region)
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(region), data); err != nil {
		return "", fmt.Errorf("render %s: %w", region, err)
	}
	return buf.String(), nil
}

// BuildPage assembles the full page view-model.
func (r *Renderer) BuildPage(s controller.State, sessionID string) PageView {
	return PageView{
		Title:        r.opts.Title,
		SessionID:    sessionID,
		Input:        s.Input,
		ScrollLocked: s.ScrollLocked,
		Stats:        BuildStats(s.Stats),
		Suggestions:  BuildSuggestions(s),
		Filters:      BuildFilters(s, r.opts),
		Panel:        BuildPanel(s, r.opts),
		Modal:        BuildModal(s, r.opts),
	}
}

// Page writes the full HTML document for first paint.
func (r *Renderer) Page(w io.Writer, s controller.State, sessionID string) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", r.BuildPage(s, sessionID)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
