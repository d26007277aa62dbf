// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package view turns controller state into view-models and renders them with
// html/template.
//
// View-models are plain structs of already formatted strings; the templates
// only lay them out. The same view-models feed the terminal front end.
package view

import (
	"html/template"
	"strconv"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/models"
)

// DefaultPlaceholderPoster is shown when a movie has no poster or the image
// fails to load.
const DefaultPlaceholderPoster = "https://via.placeholder.com/300x450/333/fff?text=No+Poster"

// Placeholder for any stats field that is missing.
const missingStat = "-"

// Toggle button labels.
const (
	ToggleShowFilters = "🔧 Advanced Filters"
	ToggleHideFilters = "🔧 Hide Filters"
)

// Empty result texts.
const (
	NoResultsTitle = "No movies found"
	NoResultsHint  = "Try adjusting your search criteria or filters."
)

// Options controls static page content.
type Options struct {
	Title             string
	PlaceholderPoster string
	Languages         []string
	Genres            []string
	// Ratings are minimum rating choices, e.g. "7.5".
	Ratings []string
}

// DefaultOptions returns the stock page content.
func DefaultOptions() Options {
	return Options{
		Title:             "CineMatch",
		PlaceholderPoster: DefaultPlaceholderPoster,
		Languages:         []string{"Hindi", "Tamil", "Telugu", "Kannada", "Malayalam", "Bengali", "Marathi"},
		Genres: []string{
			"Action", "Adventure", "Biography", "Comedy", "Crime", "Drama", "Family",
			"Fantasy", "Historical", "Horror", "Musical", "Romance", "Sports", "Thriller",
		},
		Ratings: []string{"6", "7", "7.5", "8", "8.5"},
	}
}

// Detail is one labelled row on a movie card.
type Detail struct {
	Label string
	Value string
}

// Card is one movie in the results grid.
type Card struct {
	Title          string
	PosterURL      string
	PlaceholderURL string
	Badges         []string
	Details        []Detail
	Reason         string
	// AnimationDelay is the staggered fade-in, index x 0.1s.
	AnimationDelay string
}

// Style is the inline style carrying the animation delay.
func (c Card) Style() template.CSS {
	// AnimationDelay is produced by AnimationDelay() and is always a number
	return template.CSS("animation-delay: " + c.AnimationDelay)
}

// PanelView is the main content area.
type PanelView struct {
	Loading      bool
	Error        bool
	Results      bool
	SearchBusy   bool
	ErrorMessage string
	Heading      string
	Cards        []Card
}

// Empty reports whether the results panel should show the no-results note.
func (p PanelView) Empty() bool {
	return len(p.Cards) == 0
}

// SuggestionsView is the autocomplete dropdown.
type SuggestionsView struct {
	Visible bool
	Items   []string
}

// Option is one entry of a select control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FiltersView is the advanced filter panel and its toggle.
type FiltersView struct {
	Visible     bool
	ToggleLabel string
	Languages   []Option
	Genres      []Option
	Ratings     []Option
}

// StatsView is the dataset summary strip.
type StatsView struct {
	TotalMovies   string
	Languages     string
	AverageRating string
	YearRange     string
}

// ModalView is the information overlay.
type ModalView struct {
	Open   bool
	Title  string
	Blocks []Block
}

// BuildCard converts one movie to a card. index positions the fade-in.
func BuildCard(m models.Movie, index int, placeholder string) Card {
	poster := placeholder
	if m.HasPoster() {
		poster = m.PosterURL
	}

	badges := make([]string, 0, 3)
	if m.Year.Present() {
		badges = append(badges, m.Year.String())
	}
	if m.Rating.Present() {
		badges = append(badges, "⭐ "+m.Rating.String())
	}
	if pct, ok := m.MatchPercent(); ok {
		badges = append(badges, strconv.Itoa(pct)+"% match")
	}

	return Card{
		Title:          m.Title,
		PosterURL:      poster,
		PlaceholderURL: placeholder,
		Badges:         badges,
		Details: []Detail{
			{Label: "Language", Value: m.Language.String()},
			{Label: "Genres", Value: m.Genres.String()},
			{Label: "Director", Value: m.Director.String()},
			{Label: "Cast", Value: m.MainActors.String()},
		},
		Reason:         m.Reason,
		AnimationDelay: AnimationDelay(index),
	}
}

// AnimationDelay returns the CSS delay for the card at index.
func AnimationDelay(index int) string {
	return models.FormatNumber(float64(index)/10) + "s"
}

// BuildCards converts a result list.
func BuildCards(movies []models.Movie, placeholder string) []Card {
	cards := make([]Card, len(movies))
	for i, m := range movies {
		cards[i] = BuildCard(m, i, placeholder)
	}
	return cards
}

// BuildPanel derives the main panel from state.
func BuildPanel(s controller.State, opts Options) PanelView {
	p := PanelView{SearchBusy: s.SearchBusy}
	switch s.Panel {
	case controller.PanelLoading:
		p.Loading = true
	case controller.PanelError:
		p.Error = true
		p.ErrorMessage = s.ErrorMessage
	case controller.PanelResults:
		p.Results = true
		p.Heading = s.Results.Heading
		p.Cards = BuildCards(s.Results.Movies, opts.PlaceholderPoster)
	}
	return p
}

// BuildSuggestions derives the dropdown from state.
func BuildSuggestions(s controller.State) SuggestionsView {
	return SuggestionsView{
		Visible: s.DropdownVisible && len(s.Suggestions) > 0,
		Items:   s.Suggestions,
	}
}

// BuildFilters derives the filter panel from state.
func BuildFilters(s controller.State, opts Options) FiltersView {
	label := ToggleShowFilters
	if s.FiltersVisible {
		label = ToggleHideFilters
	}

	ratings := make([]Option, len(opts.Ratings))
	for i, r := range opts.Ratings {
		ratings[i] = Option{Value: r, Label: r + "+", Selected: r == s.FilterForm.MinRating}
	}

	return FiltersView{
		Visible:     s.FiltersVisible,
		ToggleLabel: label,
		Languages:   options(opts.Languages, s.FilterForm.Language),
		Genres:      options(opts.Genres, s.FilterForm.Genre),
		Ratings:     ratings,
	}
}

func options(values []string, selected string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v, Selected: v == selected}
	}
	return out
}

// BuildStats derives the summary strip. Every missing or zero field shows a
// dash.
func BuildStats(stats *models.Stats) StatsView {
	v := StatsView{
		TotalMovies:   missingStat,
		Languages:     missingStat,
		AverageRating: missingStat,
		YearRange:     missingStat,
	}
	if stats == nil {
		return v
	}
	v.TotalMovies = orDash(stats.TotalMovies)
	if n := stats.LanguageCount(); n > 0 {
		v.Languages = strconv.Itoa(n)
	}
	v.AverageRating = orDash(stats.AverageRating)
	v.YearRange = orDash(stats.YearRange)
	return v
}

func orDash(s models.Scalar) string {
	if !s.Present() {
		return missingStat
	}
	return s.String()
}

// BuildModal derives the overlay from state.
func BuildModal(s controller.State, opts Options) ModalView {
	panel, ok := Panel(s.Modal, opts.Title)
	if !ok {
		return ModalView{}
	}
	return ModalView{Open: true, Title: panel.Title, Blocks: panel.Blocks}
}
