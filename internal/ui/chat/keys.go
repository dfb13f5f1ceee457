// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat screen.
type KeyMap struct {
	// Input editing
	Submit     key.Binding
	Newline    key.Binding
	Left       key.Binding
	Right      key.Binding
	WordLeft   key.Binding
	WordRight  key.Binding
	LineStart  key.Binding
	LineEnd    key.Binding
	Backspace  key.Binding
	Delete     key.Binding
	DeleteWord key.Binding
	KillLine   key.Binding

	// Up and Down move through input lines, the dropdown or a dialog.
	Up   key.Binding
	Down key.Binding

	// Scrolling
	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding

	// Actions
	Complete key.Binding
	Help     key.Binding
	Dismiss  key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send message"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "new line"),
		),
		Left:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:      key.NewBinding(key.WithKeys("right", "ctrl+f")),
		WordLeft:   key.NewBinding(key.WithKeys("ctrl+left", "alt+b")),
		WordRight:  key.NewBinding(key.WithKeys("ctrl+right", "alt+f")),
		LineStart:  key.NewBinding(key.WithKeys("home", "ctrl+a")),
		LineEnd:    key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:     key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
		KillLine:   key.NewBinding(key.WithKeys("ctrl+k")),
		Up:         key.NewBinding(key.WithKeys("up")),
		Down:       key.NewBinding(key.WithKeys("down")),
		ScrollUp: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+↑/↓", "scroll"),
		),
		ScrollDown: key.NewBinding(key.WithKeys("ctrl+down")),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup/pgdn", "page"),
		),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Top: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("ctrl+home/end", "top/bottom"),
		),
		Bottom: key.NewBinding(key.WithKeys("ctrl+end")),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "complete command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle shortcuts"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy selection"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings listed when shortcuts are expanded.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Submit, k.Newline, k.ScrollUp, k.PageUp, k.Top,
		k.Complete, k.Copy, k.Dismiss, k.Quit,
	}
}

// FullHelp returns the bindings grouped for the /help notice.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Input
		{k.Submit, k.Newline, k.Complete},
		// Scrolling
		{k.ScrollUp, k.PageUp, k.Top},
		// Actions
		{k.Help, k.Copy, k.Dismiss, k.Quit},
	}
}
