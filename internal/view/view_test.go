// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package view

import (
	"reflect"
	"testing"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/models"
)

func TestBuildCard_Badges(t *testing.T) {
	tests := []struct {
		name  string
		movie models.Movie
		want  []string
	}{
		{
			name: "all badges",
			movie: models.Movie{
				Year:            models.NumberScalar(2016),
				Rating:          models.NumberScalar(8.4),
				SimilarityScore: models.NumberScalar(0.8532),
			},
			want: []string{"2016", "⭐ 8.4", "85% match"},
		},
		{
			name:  "no similarity",
			movie: models.Movie{Year: models.StringScalar("2009"), Rating: models.NumberScalar(8)},
			want:  []string{"2009", "⭐ 8"},
		},
		{
			name:  "half rounds up",
			movie: models.Movie{SimilarityScore: models.NumberScalar(0.125)},
			want:  []string{"13% match"},
		},
		{
			name:  "zero values are absent",
			movie: models.Movie{Year: models.NumberScalar(0), Rating: models.StringScalar(""), SimilarityScore: models.NumberScalar(0)},
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := BuildCard(tt.movie, 0, DefaultPlaceholderPoster)
			if !reflect.DeepEqual(card.Badges, tt.want) {
				t.Errorf("Badges = %q, want %q", card.Badges, tt.want)
			}
		})
	}
}

func TestBuildCard_Poster(t *testing.T) {
	tests := []struct {
		poster string
		want   string
	}{
		{poster: "", want: DefaultPlaceholderPoster},
		{poster: "N/A", want: DefaultPlaceholderPoster},
		{poster: "https://img.example/dangal.jpg", want: "https://img.example/dangal.jpg"},
	}
	for _, tt := range tests {
		card := BuildCard(models.Movie{PosterURL: tt.poster}, 0, DefaultPlaceholderPoster)
		if card.PosterURL != tt.want {
			t.Errorf("poster %q: PosterURL = %q, want %q", tt.poster, card.PosterURL, tt.want)
		}
		if card.PlaceholderURL != DefaultPlaceholderPoster {
			t.Errorf("PlaceholderURL = %q", card.PlaceholderURL)
		}
	}
}

func TestBuildCard_Details(t *testing.T) {
	card := BuildCard(models.Movie{
		Language:   models.StringScalar("Hindi"),
		Genres:     models.StringScalar("Drama,Sport"),
		Director:   models.StringScalar("Nitesh Tiwari"),
		MainActors: models.StringScalar("Aamir Khan"),
		Reason:     "Same director",
	}, 3, DefaultPlaceholderPoster)

	want := []Detail{
		{"Language", "Hindi"},
		{"Genres", "Drama,Sport"},
		{"Director", "Nitesh Tiwari"},
		{"Cast", "Aamir Khan"},
	}
	if !reflect.DeepEqual(card.Details, want) {
		t.Errorf("Details = %+v", card.Details)
	}
	if card.Reason != "Same director" {
		t.Errorf("Reason = %q", card.Reason)
	}
	if card.AnimationDelay != "0.3s" {
		t.Errorf("AnimationDelay = %q, want 0.3s", card.AnimationDelay)
	}
}

func TestAnimationDelay(t *testing.T) {
	for i, want := range []string{"0s", "0.1s", "0.2s", "0.7s", "1s"} {
		idx := []int{0, 1, 2, 7, 10}[i]
		if got := AnimationDelay(idx); got != want {
			t.Errorf("AnimationDelay(%d) = %q, want %q", idx, got, want)
		}
	}
}

func TestBuildStats(t *testing.T) {
	stats := &models.Stats{
		TotalMovies: models.NumberScalar(5000),
		Languages: map[string]models.Scalar{
			"Hindi": models.NumberScalar(3000),
			"Tamil": models.NumberScalar(1200),
		},
		YearRange: models.StringScalar("1950-2023"),
	}
	got := BuildStats(stats)
	want := StatsView{TotalMovies: "5000", Languages: "2", AverageRating: "-", YearRange: "1950-2023"}
	if got != want {
		t.Errorf("BuildStats() = %+v, want %+v", got, want)
	}

	empty := BuildStats(nil)
	if empty.TotalMovies != "-" || empty.Languages != "-" {
		t.Errorf("BuildStats(nil) = %+v", empty)
	}

	noLangs := BuildStats(&models.Stats{Languages: map[string]models.Scalar{}})
	if noLangs.Languages != "-" {
		t.Errorf("empty language map = %q, want -", noLangs.Languages)
	}
}

func TestBuildFilters(t *testing.T) {
	opts := DefaultOptions()
	hidden := BuildFilters(controller.State{}, opts)
	if hidden.ToggleLabel != ToggleShowFilters || hidden.Visible {
		t.Errorf("hidden = %+v", hidden)
	}

	shown := BuildFilters(controller.State{
		FiltersVisible: true,
		FilterForm:     controller.FilterForm{Language: "Tamil", MinRating: "7.5"},
	}, opts)
	if shown.ToggleLabel != ToggleHideFilters {
		t.Errorf("label = %q", shown.ToggleLabel)
	}
	selected := func(opts []Option) string {
		for _, o := range opts {
			if o.Selected {
				return o.Value
			}
		}
		return ""
	}
	if selected(shown.Languages) != "Tamil" || selected(shown.Ratings) != "7.5" || selected(shown.Genres) != "" {
		t.Errorf("selection not kept: %+v", shown)
	}
}

func TestBuildPanel(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		name  string
		state controller.State
		check func(PanelView) bool
	}{
		{"idle", controller.State{}, func(p PanelView) bool { return !p.Loading && !p.Error && !p.Results }},
		{"loading", controller.State{Panel: controller.PanelLoading, SearchBusy: true}, func(p PanelView) bool {
			return p.Loading && !p.Error && !p.Results && p.SearchBusy
		}},
		{"error", controller.State{Panel: controller.PanelError, ErrorMessage: "boom"}, func(p PanelView) bool {
			return p.Error && !p.Loading && !p.Results && p.ErrorMessage == "boom"
		}},
		{"empty results", controller.State{Panel: controller.PanelResults}, func(p PanelView) bool {
			return p.Results && p.Empty() && len(p.Cards) == 0
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p := BuildPanel(tt.state, opts); !tt.check(p) {
				t.Errorf("BuildPanel() = %+v", p)
			}
		})
	}
}

func TestBuildModal(t *testing.T) {
	opts := DefaultOptions()
	if m := BuildModal(controller.State{}, opts); m.Open {
		t.Error("closed modal should not be open")
	}
	for _, p := range []controller.ModalPanel{controller.ModalAbout, controller.ModalHelp, controller.ModalContact} {
		m := BuildModal(controller.State{Modal: p}, opts)
		if !m.Open || m.Title == "" || len(m.Blocks) == 0 {
			t.Errorf("%s: %+v", p, m)
		}
	}
	if m := BuildModal(controller.State{Modal: controller.ModalAbout}, opts); m.Title != "About CineMatch" {
		t.Errorf("about title = %q", m.Title)
	}
}

func TestBuildSuggestions(t *testing.T) {
	if v := BuildSuggestions(controller.State{DropdownVisible: true}); v.Visible {
		t.Error("an empty list is never visible")
	}
	v := BuildSuggestions(controller.State{DropdownVisible: true, Suggestions: []string{"Dangal"}})
	if !v.Visible || len(v.Items) != 1 {
		t.Errorf("suggestions = %+v", v)
	}
}
