// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
)

// =============================================================================
// HELPER DROPDOWN
// =============================================================================

// DefaultDropdownMax caps the number of rows the dropdown takes.
const DefaultDropdownMax = 8

// FilterHelpers returns the commands that start with the typed prefix.
// Anything after the first space is ignored.
func FilterHelpers(commands []string, input string) []string {
	if !strings.HasPrefix(input, "/") {
		return nil
	}
	prefix, _, _ := strings.Cut(input, " ")
	var out []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, prefix) {
			out = append(out, cmd)
		}
	}
	return out
}

// DropdownHeight returns the rows the dropdown needs, zero when hidden.
func DropdownHeight(h model.HelperState, input string, maxRows int) int {
	if !h.Showing(input) {
		return 0
	}
	if maxRows <= 0 {
		maxRows = DefaultDropdownMax
	}
	return min(len(h.Filtered), maxRows)
}

// RenderDropdown draws height rows of the filtered helper list. The selected
// entry is reversed and kept in view.
func RenderDropdown(h model.HelperState, height int, theme *styles.Theme) []model.Line {
	if height <= 0 || len(h.Filtered) == 0 {
		return nil
	}

	selected := model.ClampIndex(h.Selected, len(h.Filtered))
	start := WindowStart(selected, len(h.Filtered), height)

	lines := make([]model.Line, 0, height)
	for i := start; i < len(h.Filtered) && len(lines) < height; i++ {
		style := theme.DropdownItem
		if i == selected {
			style = theme.DropdownSelected
		}
		lines = append(lines, model.Line{
			{Text: "  "},
			{Text: " " + h.Filtered[i] + " ", Style: style},
		})
	}
	return lines
}
