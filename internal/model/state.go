// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// APPLICATION STATE SNAPSHOT
// =============================================================================

// AppState is everything the renderer needs to paint one frame. The
// application loop owns it; the renderer reads it.
type AppState struct {
	// Terminal dimensions in cells.
	Width  int
	Height int

	Messages []Message

	// Loading shows a spinner line below the messages; SpinnerPhase selects
	// the frame.
	Loading      bool
	SpinnerPhase int

	// Input buffer and its byte-offset cursor.
	Input  string
	Cursor int
	// Masked hides the input behind the mask glyph (secret entry).
	Masked bool
	// ShellMode swaps the prompt and border colour.
	ShellMode bool

	Scroll  ScrollState
	Helpers HelperState
	Dialog  Dialog

	// Selection is nil when no drag is active and nothing is captured.
	Selection *Selection

	// ShowShortcuts expands the hint row into the full key list.
	ShowShortcuts bool
}

// ScrollState is the user's scroll position over the message lines.
type ScrollState struct {
	// Offset is measured in raw (pre tag-processing) lines.
	Offset int
	// Pinned keeps the view at the newest content.
	Pinned bool
}

// HelperState drives the slash-command dropdown.
type HelperState struct {
	Enabled  bool
	Commands []string
	// Filtered is computed by the application from the input prefix.
	Filtered []string
	Selected int
}

// Showing reports whether the dropdown is visible for the given input.
func (h HelperState) Showing(input string) bool {
	return h.Enabled && len(h.Filtered) > 0 && strings.HasPrefix(input, "/")
}

// =============================================================================
// SELECTION STATE
// =============================================================================

// Point is a screen coordinate in cells.
type Point struct {
	X int
	Y int
}

// Selection is a mouse drag over the message area.
type Selection struct {
	Start      Point
	End        Point
	InProgress bool
	// Text is captured when the drag is released.
	Text string
}
