// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// HINT AND SHORTCUT LIST
// =============================================================================

// HintText is shown under the input while the shortcut list is collapsed.
const HintText = "? for shortcuts"

// ShortcutRows returns the number of rows the expanded list takes.
func ShortcutRows(bindings []key.Binding) int {
	n := 0
	for _, b := range bindings {
		if b.Enabled() {
			n++
		}
	}
	return n
}

// RenderHint draws the collapsed hint or, when expanded, one row per
// enabled key binding with the keys aligned in a column.
func RenderHint(expanded bool, bindings []key.Binding, theme *styles.Theme) []model.Line {
	if !expanded {
		return []model.Line{
			{{Text: " "}, {Text: HintText, Style: theme.Hint}},
			model.BlankLine(),
		}
	}

	keyWidth := 0
	for _, b := range bindings {
		if b.Enabled() {
			keyWidth = max(keyWidth, util.StringWidth(b.Help().Key))
		}
	}

	lines := make([]model.Line, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		lines = append(lines, model.Line{
			{Text: " "},
			{Text: util.PadWidth(help.Key, keyWidth), Style: theme.ShortcutKey},
			{Text: "  "},
			{Text: help.Desc, Style: theme.ShortcutDesc},
		})
	}
	return lines
}
