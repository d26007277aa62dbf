// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomtom215/cinematch/internal/controller"
	"github.com/tomtom215/cinematch/internal/view"
)

// chromeHeight is the number of lines around the results viewport.
const chromeHeight = 16

var (
	accentColor = lipgloss.Color("205")
	mutedColor  = lipgloss.Color("241")
	errorColor  = lipgloss.Color("196")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	headingStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accentColor).Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.state.Modal != controller.ModalNone {
		return m.viewModal()
	}

	sections := []string{
		titleStyle.Render(m.viewOpts.Title),
		renderStats(view.BuildStats(m.state.Stats)),
		m.input.View(),
	}
	if s := renderSuggestions(view.BuildSuggestions(m.state), m.suggestionCursor); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.viewFilters(), m.viewPanel(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderStats(s view.StatsView) string {
	return mutedStyle.Render(fmt.Sprintf("Movies: %s  •  Languages: %s  •  Avg rating: %s  •  Years: %s",
		s.TotalMovies, s.Languages, s.AverageRating, s.YearRange))
}

func renderSuggestions(s view.SuggestionsView, cursor int) string {
	if !s.Visible {
		return ""
	}
	lines := make([]string, len(s.Items))
	for i, item := range s.Items {
		if i == cursor {
			lines[i] = selectedStyle.Render("› " + item)
		} else {
			lines[i] = "  " + item
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewFilters() string {
	fv := view.BuildFilters(m.state, m.viewOpts)
	if !fv.Visible {
		return mutedStyle.Render(fv.ToggleLabel + " (ctrl+f)")
	}

	rows := []struct {
		label string
		value string
	}{
		{"Language", orAny(m.form.Language)},
		{"Genre", orAny(m.form.Genre)},
		{"Min rating", ratingLabel(m.form.MinRating)},
		{"", "[ Apply Filters ]"},
	}
	lines := []string{mutedStyle.Render(fv.ToggleLabel + " (ctrl+f)")}
	for i, row := range rows {
		line := row.value
		if row.label != "" {
			line = fmt.Sprintf("%-11s ‹ %s ›", row.label+":", row.value)
		}
		if m.focus == focusFilters && i == m.filterRow {
			line = selectedStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func orAny(v string) string {
	if v == "" {
		return "Any"
	}
	return v
}

func ratingLabel(v string) string {
	if v == "" {
		return "Any"
	}
	return v + "+"
}

func (m *Model) viewPanel() string {
	panel := view.BuildPanel(m.state, m.viewOpts)
	switch {
	case panel.Loading:
		return m.spinner.View() + " Finding movies..."
	case panel.Error:
		return errorStyle.Render("❌ "+panel.ErrorMessage) + "\n" + mutedStyle.Render("ctrl+r to retry")
	case panel.Results:
		return m.viewport.View()
	}
	return ""
}

// renderResults lays out the heading and cards for the viewport.
func renderResults(panel view.PanelView, width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(panel.Heading))
	b.WriteString("\n")
	if panel.Empty() {
		b.WriteString(view.NoResultsTitle + "\n" + mutedStyle.Render(view.NoResultsHint))
		return b.String()
	}
	for _, card := range panel.Cards {
		b.WriteString(renderCard(card, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCard(c view.Card, width int) string {
	lines := []string{titleStyle.Render(c.Title)}

	if len(c.Badges) > 0 {
		badges := make([]string, len(c.Badges))
		for i, badge := range c.Badges {
			badges[i] = badgeStyle.Render(badge)
		}
		lines = append(lines, strings.Join(badges, " "))
	}
	for _, d := range c.Details {
		lines = append(lines, fmt.Sprintf("%s: %s", d.Label, d.Value))
	}
	if c.Reason != "" {
		lines = append(lines, "🎯 Why recommended: "+c.Reason)
	}
	lines = append(lines, mutedStyle.Render("Poster: "+c.PosterURL))

	style := cardStyle
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewModal() string {
	modal := view.BuildModal(m.state, m.viewOpts)
	wrap := max(min(m.width-10, 80), 30)

	body := modalMarkdown(modal)
	if r, err := m.modalMarkdownRenderer(wrap); err == nil {
		if out, err := r.Render(body); err == nil {
			body = out
		}
	}
	box := modalStyle.Render(body + "\n" + mutedStyle.Render("esc / enter to close"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// modalMarkdown converts static panel content to markdown.
func modalMarkdown(modal view.ModalView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", modal.Title)
	for _, block := range modal.Blocks {
		switch {
		case block.Heading != "":
			fmt.Fprintf(&b, "## %s\n\n", block.Heading)
		case block.Paragraph != "":
			fmt.Fprintf(&b, "%s\n\n", block.Paragraph)
		case len(block.List) > 0:
			for i, item := range block.List {
				bullet := "-"
				if block.Ordered {
					bullet = fmt.Sprintf("%d.", i+1)
				}
				fmt.Fprintf(&b, "%s %s\n", bullet, labelled(item))
			}
			b.WriteString("\n")
		case len(block.Lines) > 0:
			for _, item := range block.Lines {
				fmt.Fprintf(&b, "%s  \n", labelled(item))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func labelled(item view.Item) string {
	if item.Label == "" {
		return item.Text
	}
	return "**" + item.Label + "** " + item.Text
}
