// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommendapi"
	"github.com/tomtom215/cinematch/internal/view"
)

type focus int

const (
	focusInput focus = iota
	focusFilters
	focusResults
)

// filter form rows; the last row is the apply button
const (
	rowLanguage = iota
	rowGenre
	rowRating
	rowApply
	filterRows
)

// Options configures the terminal front end.
type Options struct {
	Controller *controller.Controller
	Client     recommendapi.Client
	View       view.Options
	// GlamourStyle is a glamour standard style name. Default: "dark".
	GlamourStyle string
	// CallTimeout bounds each upstream call. Default: 30s.
	CallTimeout time.Duration
}

// Model is the Bubble Tea model. It owns one controller.State.
type Model struct {
	ctrl        *controller.Controller
	client      recommendapi.Client
	viewOpts    view.Options
	callTimeout time.Duration
	log         zerolog.Logger

	// after schedules a timer message; replaced in tests
	after func(d time.Duration, msg tea.Msg) tea.Cmd

	state controller.State
	focus focus

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	// suggestionCursor is -1 when no suggestion is highlighted
	suggestionCursor int
	filterRow        int
	form             controller.FilterForm

	glamourStyle string
	markdown     *glamour.TermRenderer
	markdownWrap int

	width  int
	height int
}

// New builds a model. Nil Controller falls back to the default options.
func New(opts Options) *Model {
	if opts.Controller == nil {
		opts.Controller = controller.New(controller.DefaultOptions())
	}
	if opts.View.Title == "" {
		opts.View = view.DefaultOptions()
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "dark"
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 30 * time.Second
	}

	ti := textinput.New()
	ti.Placeholder = "Enter a movie title (e.g. Dangal)"
	ti.CharLimit = controller.MaxTitleLength
	ti.Prompt = "🎬 "
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return &Model{
		ctrl:             opts.Controller,
		client:           opts.Client,
		viewOpts:         opts.View,
		callTimeout:      opts.CallTimeout,
		log:              logging.WithComponent("tui"),
		after:            tick,
		input:            ti,
		spinner:          sp,
		viewport:         viewport.New(80, 20),
		help:             help.New(),
		keys:             defaultKeyMap(),
		suggestionCursor: -1,
		glamourStyle:     opts.GlamourStyle,
	}
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// State returns the current controller state.
func (m *Model) State() controller.State {
	return m.state
}

// Init loads the stats strip, the terminal counterpart of page load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.dispatch(controller.PageLoaded{}))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.state.Panel != controller.PanelLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case controller.Event:
		return m, m.dispatch(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// cursor blink and friends
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch runs one event through the controller and turns the effects into
// commands.
func (m *Model) dispatch(ev controller.Event) tea.Cmd {
	next, effects := m.ctrl.Update(m.state, ev)
	m.state = next

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, fx := range effects {
		if cmd := m.execute(fx); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) execute(fx controller.Effect) tea.Cmd {
	switch e := fx.(type) {
	case controller.Render:
		return m.render(e.Region)
	case controller.SetInput:
		m.input.SetValue(e.Value)
		m.input.CursorEnd()
	case controller.ScrollIntoView:
		m.viewport.GotoTop()
	case controller.LockScroll:
		// the modal swallows navigation keys while open

	case controller.ScheduleAutocomplete:
		return m.after(e.Delay, controller.AutocompleteDue{Seq: e.Seq, Query: e.Query})
	case controller.CancelAutocomplete:
		// a due message whose Seq is stale is ignored by the controller
	case controller.ScheduleDropdownHide:
		return m.after(e.Delay, controller.DropdownHideDue{})

	case controller.FetchRecommendations:
		return m.call(func(ctx context.Context) controller.Event {
			resp, err := m.client.Recommend(ctx, e.Title, e.Count)
			return controller.RecommendationsLoaded{Title: e.Title, Response: resp, Err: err}
		})
	case controller.FetchSuggestions:
		return m.call(func(ctx context.Context) controller.Event {
			resp, err := m.client.Autocomplete(ctx, e.Query, e.Limit)
			return controller.SuggestionsLoaded{Query: e.Query, Response: resp, Err: err}
		})
	case controller.FetchFiltered:
		return m.call(func(ctx context.Context) controller.Event {
			resp, err := m.client.Filter(ctx, e.Filters)
			return controller.FilteredLoaded{Filters: e.Filters, Response: resp, Err: err}
		})
	case controller.FetchStats:
		return m.call(func(ctx context.Context) controller.Event {
			resp, err := m.client.Stats(ctx)
			return controller.StatsLoaded{Response: resp, Err: err}
		})

	case controller.Log:
		if e.Level == controller.LogError {
			m.log.Warn().Err(e.Err).Msg(e.Message)
		} else {
			m.log.Info().Msg(e.Message)
		}
	}
	return nil
}

func (m *Model) call(fn func(ctx context.Context) controller.Event) tea.Cmd {
	timeout := m.callTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
}

func (m *Model) render(region controller.Region) tea.Cmd {
	switch region {
	case controller.RegionPanel:
		m.refreshResults()
		if m.state.Panel == controller.PanelLoading {
			return m.spinner.Tick
		}
	case controller.RegionSuggestions:
		if m.suggestionCursor >= len(m.state.Suggestions) || !m.state.DropdownVisible {
			m.suggestionCursor = -1
		}
	case controller.RegionFilters:
		m.form = m.state.FilterForm
		if !m.state.FiltersVisible && m.focus == focusFilters {
			return m.setFocus(focusInput)
		}
	}
	return nil
}

func (m *Model) refreshResults() {
	panel := view.BuildPanel(m.state, m.viewOpts)
	if !panel.Results {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(renderResults(panel, m.viewport.Width))
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = max(width-8, 10)
	m.viewport.Width = max(width-4, 20)
	m.viewport.Height = max(height-chromeHeight, 5)
	m.help.Width = width
	m.refreshResults()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}

	if m.state.Modal != controller.ModalNone {
		switch {
		case key.Matches(msg, m.keys.Escape):
			return m.dispatch(controller.EscapePressed{})
		case key.Matches(msg, m.keys.Submit), msg.String() == "q":
			return m.dispatch(controller.ModalClosed{})
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		return m.dispatch(controller.ModalOpened{Panel: controller.ModalHelp})
	case key.Matches(msg, m.keys.About):
		return m.dispatch(controller.ModalOpened{Panel: controller.ModalAbout})
	case key.Matches(msg, m.keys.Contact):
		return m.dispatch(controller.ModalOpened{Panel: controller.ModalContact})
	case key.Matches(msg, m.keys.ToggleFilters):
		return m.dispatch(controller.FiltersToggled{})
	case key.Matches(msg, m.keys.Retry):
		if m.state.Panel == controller.PanelError {
			return m.dispatch(controller.RetryRequested{})
		}
		return nil
	case key.Matches(msg, m.keys.NextFocus):
		return m.setFocus(m.nextFocus())
	}

	switch m.focus {
	case focusFilters:
		return m.handleFilterKey(msg)
	case focusResults:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	default:
		return m.handleInputKey(msg)
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	items := view.BuildSuggestions(m.state)
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.suggestionCursor = -1
		return m.dispatch(controller.EscapePressed{})
	case key.Matches(msg, m.keys.Down):
		if items.Visible {
			m.suggestionCursor = min(m.suggestionCursor+1, len(items.Items)-1)
		}
		return nil
	case key.Matches(msg, m.keys.Up):
		if items.Visible {
			m.suggestionCursor = max(m.suggestionCursor-1, -1)
		}
		return nil
	case key.Matches(msg, m.keys.Submit):
		if items.Visible && m.suggestionCursor >= 0 {
			choice := items.Items[m.suggestionCursor]
			m.suggestionCursor = -1
			return m.dispatch(controller.SuggestionSelected{Value: choice})
		}
		return m.dispatch(controller.SearchSubmitted{Value: m.input.Value()})
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.suggestionCursor = -1
		return tea.Batch(cmd, m.dispatch(controller.InputChanged{Value: after}))
	}
	return cmd
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.filterRow = (m.filterRow + filterRows - 1) % filterRows
	case key.Matches(msg, m.keys.Down):
		m.filterRow = (m.filterRow + 1) % filterRows
	case key.Matches(msg, m.keys.Left):
		m.cycleFilter(-1)
	case key.Matches(msg, m.keys.Right):
		m.cycleFilter(1)
	case key.Matches(msg, m.keys.Escape):
		return m.setFocus(focusInput)
	case key.Matches(msg, m.keys.Submit):
		return m.dispatch(controller.FiltersApplied{
			Language:  m.form.Language,
			Genre:     m.form.Genre,
			MinRating: m.form.MinRating,
		})
	}
	return nil
}

// cycleFilter steps the selected row through "any" and its options.
func (m *Model) cycleFilter(step int) {
	var values []string
	var field *string
	switch m.filterRow {
	case rowLanguage:
		values, field = m.viewOpts.Languages, &m.form.Language
	case rowGenre:
		values, field = m.viewOpts.Genres, &m.form.Genre
	case rowRating:
		values, field = m.viewOpts.Ratings, &m.form.MinRating
	default:
		return
	}

	choices := append([]string{""}, values...)
	idx := 0
	for i, v := range choices {
		if v == *field {
			idx = i
			break
		}
	}
	idx = (idx + step + len(choices)) % len(choices)
	*field = choices[idx]
}

func (m *Model) nextFocus() focus {
	switch m.focus {
	case focusInput:
		if m.state.FiltersVisible {
			return focusFilters
		}
		return focusResults
	case focusFilters:
		return focusResults
	default:
		return focusInput
	}
}

// setFocus moves keyboard focus, reporting input focus changes to the
// controller the way the browser reports focusin and focusout.
func (m *Model) setFocus(f focus) tea.Cmd {
	if f == m.focus {
		return nil
	}
	prev := m.focus
	m.focus = f

	switch {
	case prev == focusInput:
		m.input.Blur()
		return m.dispatch(controller.InputBlurred{})
	case f == focusInput:
		return tea.Batch(m.input.Focus(), m.dispatch(controller.InputFocused{}))
	}
	return nil
}

// modalMarkdownRenderer caches a glamour renderer per wrap width.
func (m *Model) modalMarkdownRenderer(wrap int) (*glamour.TermRenderer, error) {
	if m.markdown != nil && m.markdownWrap == wrap {
		return m.markdown, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.glamourStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil, err
	}
	m.markdown, m.markdownWrap = r, wrap
	return r, nil
}
