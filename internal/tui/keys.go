// CineMatch - Movie Recommendation Interaction Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit        key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	NextFocus     key.Binding
	Escape        key.Binding
	ToggleFilters key.Binding
	Retry         key.Binding
	Help          key.Binding
	About         key.Binding
	Contact       key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search / apply")),
		Up:            key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:          key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:          key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev option")),
		Right:         key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		NextFocus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		Escape:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		ToggleFilters: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filters")),
		Retry:         key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		Help:          key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		About:         key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "about")),
		Contact:       key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "contact")),
		Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextFocus, k.ToggleFilters, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Up, k.Down, k.Left, k.Right},
		{k.NextFocus, k.Escape, k.ToggleFilters, k.Retry},
		{k.Help, k.About, k.Contact, k.Quit},
	}
}
