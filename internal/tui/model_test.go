// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/models"
)

type fakeEngine struct {
	mu           sync.Mutex
	titles       []string
	queries      []string
	filters      []models.Filters
	recommendErr error
}

func (f *fakeEngine) Recommend(_ context.Context, title string, _ int) (*models.RecommendResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	if f.recommendErr != nil {
		err := f.recommendErr
		f.recommendErr = nil
		return nil, err
	}
	return &models.RecommendResponse{
		Success:    true,
		InputMovie: title,
		Recommendations: []models.Movie{{
			Title:           "Chak De! India",
			Year:            models.NumberScalar(2007),
			Rating:          models.NumberScalar(8.2),
			SimilarityScore: models.NumberScalar(0.87),
			Reason:          "Sports drama",
		}},
	}, nil
}

func (f *fakeEngine) Autocomplete(_ context.Context, query string, _ int) (*models.AutocompleteResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return &models.AutocompleteResponse{Suggestions: []string{"Dangal", "Dangal 2"}}, nil
}

func (f *fakeEngine) Filter(_ context.Context, filters models.Filters) (*models.FilterResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filters)
	return &models.FilterResponse{Success: true, Movies: []models.Movie{{Title: "Lagaan"}}}, nil
}

func (f *fakeEngine) Stats(_ context.Context) (*models.StatsResponse, error) {
	return &models.StatsResponse{Success: true, Stats: &models.Stats{
		TotalMovies: models.NumberScalar(1200),
		Languages:   map[string]models.Scalar{"Hindi": models.NumberScalar(900), "Tamil": models.NumberScalar(300)},
	}}, nil
}

// harness drives a Model synchronously. Timer messages are held until fire
// is called; other commands run inline with a short timeout so cursor blink
// commands do not stall the test.
type harness struct {
	t      *testing.T
	m      *Model
	engine *fakeEngine
	timers []tea.Msg
	quit   bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	engine := &fakeEngine{}
	h := &harness{t: t, engine: engine}
	h.m = New(Options{Client: engine, GlamourStyle: "notty"})
	h.m.after = func(_ time.Duration, msg tea.Msg) tea.Cmd {
		h.timers = append(h.timers, msg)
		return nil
	}
	return h
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.run(cmd)
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		switch msg := msg.(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				h.run(c)
			}
		case tea.QuitMsg:
			h.quit = true
		case controller.Event:
			h.send(msg)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func (h *harness) fire() {
	pending := h.timers
	h.timers = nil
	for _, msg := range pending {
		h.send(msg)
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) press(k tea.KeyType) {
	h.send(tea.KeyMsg{Type: k})
}

func TestModel_InitLoadsStats(t *testing.T) {
	h := newHarness(t)
	h.run(h.m.Init())

	if h.m.State().Stats == nil {
		t.Fatal("stats not loaded")
	}
	if out := h.m.View(); !strings.Contains(out, "Movies: 1200") || !strings.Contains(out, "Languages: 2") {
		t.Errorf("stats strip missing from view:\n%s", out)
	}
}

func TestModel_SearchShowsResults(t *testing.T) {
	h := newHarness(t)
	h.typeText("Dangal")
	h.press(tea.KeyEnter)

	s := h.m.State()
	if s.Panel != controller.PanelResults {
		t.Fatalf("panel = %s, want results", s.Panel)
	}
	if want := `🎯 Recommendations for "Dangal"`; s.Results.Heading != want {
		t.Errorf("heading = %q, want %q", s.Results.Heading, want)
	}

	out := h.m.View()
	for _, want := range []string{"Chak De! India", "⭐ 8.2", "87% match", "🎯 Why recommended: Sports drama"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_EmptySearchShowsError(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyEnter)

	if got := h.m.State().ErrorMessage; got != controller.MsgEmptyTitle {
		t.Errorf("error = %q", got)
	}
	if len(h.engine.titles) != 0 {
		t.Errorf("engine called for an empty title")
	}
}

func TestModel_RetryAfterNetworkError(t *testing.T) {
	h := newHarness(t)
	h.engine.recommendErr = errors.New("connection refused")

	h.typeText("Dangal")
	h.press(tea.KeyEnter)
	if got := h.m.State().ErrorMessage; got != controller.MsgNetworkError {
		t.Fatalf("error = %q, want network error", got)
	}
	if !strings.Contains(h.m.View(), "ctrl+r to retry") {
		t.Error("retry hint missing")
	}

	h.press(tea.KeyCtrlR)
	if h.m.State().Panel != controller.PanelResults {
		t.Errorf("panel after retry = %s", h.m.State().Panel)
	}
	if len(h.engine.titles) != 2 {
		t.Errorf("engine calls = %v", h.engine.titles)
	}
}

func TestModel_AutocompleteDebounce(t *testing.T) {
	h := newHarness(t)
	h.typeText("Dang")
	h.fire()

	if len(h.engine.queries) != 1 || h.engine.queries[0] != "Dang" {
		t.Fatalf("queries = %v, want only the last input", h.engine.queries)
	}
	if !h.m.State().DropdownVisible {
		t.Fatal("dropdown hidden")
	}
	if !strings.Contains(h.m.View(), "Dangal 2") {
		t.Error("suggestions missing from view")
	}

	h.press(tea.KeyDown)
	h.press(tea.KeyDown)
	h.press(tea.KeyEnter)

	if got := h.m.input.Value(); got != "Dangal 2" {
		t.Errorf("input = %q, want the selected suggestion", got)
	}
	if h.m.State().DropdownVisible {
		t.Error("dropdown still visible after selection")
	}
	if len(h.engine.titles) != 1 || h.engine.titles[0] != "Dangal 2" {
		t.Errorf("searched titles = %v", h.engine.titles)
	}
}

func TestModel_ShortInputSkipsAutocomplete(t *testing.T) {
	h := newHarness(t)
	h.typeText("D")
	h.fire()

	if len(h.engine.queries) != 0 {
		t.Errorf("queries = %v, want none", h.engine.queries)
	}
}

func TestModel_EscapeHidesDropdown(t *testing.T) {
	h := newHarness(t)
	h.typeText("Dang")
	h.fire()
	h.press(tea.KeyEsc)

	if h.m.State().DropdownVisible {
		t.Error("dropdown visible after escape")
	}
	if strings.Contains(h.m.View(), "Dangal 2") {
		t.Error("suggestions still drawn")
	}
}

func TestModel_Filters(t *testing.T) {
	tests := []struct {
		name      string
		keys      []tea.KeyType
		wantPanel controller.Panel
		want      string
	}{
		{
			name:      "no filter selected",
			keys:      []tea.KeyType{tea.KeyEnter},
			wantPanel: controller.PanelError,
			want:      controller.MsgNoFilter,
		},
		{
			name:      "language",
			keys:      []tea.KeyType{tea.KeyRight, tea.KeyEnter},
			wantPanel: controller.PanelResults,
			want:      "🔍 Movies matching: Language: Hindi",
		},
		{
			name:      "genre and rating",
			keys:      []tea.KeyType{tea.KeyDown, tea.KeyLeft, tea.KeyDown, tea.KeyRight, tea.KeyEnter},
			wantPanel: controller.PanelResults,
			want:      "🔍 Movies matching: Genre: Thriller | Rating: 6+",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.press(tea.KeyCtrlF)
			if !strings.Contains(h.m.View(), "🔧 Hide Filters") {
				t.Fatal("filter panel not shown")
			}
			h.press(tea.KeyTab)
			if h.m.focus != focusFilters {
				t.Fatalf("focus = %d, want filters", h.m.focus)
			}
			for _, k := range tt.keys {
				h.press(k)
			}

			s := h.m.State()
			if s.Panel != tt.wantPanel {
				t.Fatalf("panel = %s, want %s", s.Panel, tt.wantPanel)
			}
			got := s.ErrorMessage
			if s.Panel == controller.PanelResults {
				got = s.Results.Heading
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModel_HidingFiltersReturnsFocus(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyCtrlF)
	h.press(tea.KeyTab)
	h.press(tea.KeyCtrlF)

	if h.m.State().FiltersVisible {
		t.Fatal("filters still visible")
	}
	if h.m.focus != focusInput {
		t.Errorf("focus = %d, want input", h.m.focus)
	}
	if !strings.Contains(h.m.View(), "🔧 Advanced Filters") {
		t.Error("toggle label not reset")
	}
}

func TestModel_Modal(t *testing.T) {
	tests := []struct {
		key   tea.KeyType
		panel controller.ModalPanel
		title string
	}{
		{tea.KeyF1, controller.ModalHelp, "Help & Usage Guide"},
		{tea.KeyF2, controller.ModalAbout, "About CineMatch"},
		{tea.KeyF3, controller.ModalContact, "Contact & Contributing"},
	}
	for _, tt := range tests {
		t.Run(string(tt.panel), func(t *testing.T) {
			h := newHarness(t)
			h.press(tt.key)

			s := h.m.State()
			if s.Modal != tt.panel || !s.ScrollLocked {
				t.Fatalf("modal = %q locked = %v", s.Modal, s.ScrollLocked)
			}
			if out := h.m.View(); !strings.Contains(out, tt.title) {
				t.Errorf("modal view missing %q:\n%s", tt.title, out)
			}

			// typing is swallowed while the modal is open
			h.typeText("x")
			if h.m.input.Value() != "" {
				t.Error("input changed behind the modal")
			}

			h.press(tea.KeyEsc)
			if h.m.State().Modal != controller.ModalNone || h.m.State().ScrollLocked {
				t.Error("modal not closed")
			}
		})
	}
}

func TestModel_BlurHidesDropdown(t *testing.T) {
	h := newHarness(t)
	h.typeText("Dang")
	h.fire()

	h.press(tea.KeyTab)
	if !h.m.State().DropdownVisible {
		t.Fatal("dropdown hidden before the delay")
	}
	h.fire()
	if h.m.State().DropdownVisible {
		t.Error("dropdown visible after blur delay")
	}

	// focusing the input again re-shows the last suggestions
	h.press(tea.KeyTab)
	if !h.m.State().DropdownVisible {
		t.Error("dropdown not re-shown on focus")
	}
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyCtrlC)
	if !h.quit {
		t.Error("ctrl+c did not quit")
	}
}
