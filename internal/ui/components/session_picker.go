// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// SESSION PICKER
// =============================================================================

// SessionPickerMaxHeight caps the picker, borders included.
const SessionPickerMaxHeight = 11

// SessionPickerHeight returns the picker height for the rows available.
func SessionPickerHeight(available int) int {
	return max(min(SessionPickerMaxHeight, available), 0)
}

// SessionRow formats one session summary.
func SessionRow(s model.SessionSummary, now time.Time) string {
	title := util.SingleLine(s.Title)
	if title == "" {
		title = "Untitled session"
	}

	count := humanize.Comma(int64(s.MessageCount)) + " messages"
	if s.MessageCount == 1 {
		count = "1 message"
	}

	when := s.UpdatedAt
	if when.IsZero() {
		when = s.CreatedAt
	}
	return fmt.Sprintf("%s · %s · %s", title, humanize.RelTime(when, now, "ago", "from now"), count)
}

// RenderSessionPicker draws the session list in a box of the given height.
// The list scrolls so the selected session stays visible.
func RenderSessionPicker(p *model.SessionPicker, width, height int, now time.Time, theme *styles.Theme) []model.Line {
	rows := max(height-2, 0)
	content := make([]model.Line, 0, rows)

	if len(p.Sessions) == 0 {
		if rows > 0 {
			content = append(content, model.NewLine("No sessions", theme.SessionMeta))
		}
		return Box(content, width, theme.SessionBox, "Sessions")
	}

	selected := model.ClampIndex(p.Selected, len(p.Sessions))
	start := WindowStart(selected, len(p.Sessions), rows)
	for i := start; i < len(p.Sessions) && len(content) < rows; i++ {
		row := SessionRow(p.Sessions[i], now)
		if i == selected {
			content = append(content, model.NewLine(row, theme.SessionItemSelected))
		} else {
			content = append(content, model.NewLine(row, theme.SessionItem))
		}
	}
	return Box(content, width, theme.SessionBox, "Sessions")
}

// WindowStart returns the first visible index of a list of count entries
// shown in rows slots, keeping selected in view.
func WindowStart(selected, count, rows int) int {
	if rows <= 0 || count <= rows {
		return 0
	}
	selected = model.ClampIndex(selected, count)
	if selected < rows {
		return 0
	}
	return min(selected-rows+1, count-rows)
}
