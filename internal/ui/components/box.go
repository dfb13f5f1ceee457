// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// BORDERED BOX
// =============================================================================

// Box draws content inside the border and horizontal padding of a box style
// such as Theme.InputBorder. Every returned line is exactly width cells and
// there is one line per content line plus the top and bottom border.
//
// Content lines are cut to the inner width, never re-wrapped, so the height
// stays what the caller measured.
func Box(content []model.Line, width int, style lipgloss.Style, title string) []model.Line {
	if width <= 0 {
		return make([]model.Line, len(content)+2)
	}

	border := style.GetBorderStyle()
	borderStyle := lipgloss.NewStyle().Foreground(style.GetBorderTopForeground())
	padLeft, padRight := style.GetPaddingLeft(), style.GetPaddingRight()
	inner := BoxInnerWidth(width, style)

	lines := make([]model.Line, 0, len(content)+2)
	lines = append(lines, boxEdge(border.TopLeft, border.Top, border.TopRight, title, width, borderStyle))

	for _, row := range content {
		line := model.Line{{Text: border.Left, Style: borderStyle}}
		if padLeft > 0 {
			line = append(line, model.Span{Text: strings.Repeat(" ", padLeft)})
		}
		line = append(line, row.Fit(inner)...)
		if padRight > 0 {
			line = append(line, model.Span{Text: strings.Repeat(" ", padRight)})
		}
		line = append(line, model.Span{Text: border.Right, Style: borderStyle})
		lines = append(lines, line.Fit(width))
	}

	lines = append(lines, boxEdge(border.BottomLeft, border.Bottom, border.BottomRight, "", width, borderStyle))
	return lines
}

// BoxInnerWidth is the content width Box leaves inside borders and padding.
func BoxInnerWidth(width int, style lipgloss.Style) int {
	return max(width-2-style.GetPaddingLeft()-style.GetPaddingRight(), 0)
}

func boxEdge(left, fill, right, title string, width int, style lipgloss.Style) model.Line {
	if width < 2 {
		return model.NewLine(util.TruncateWidth(left, width), style)
	}

	middle := width - 2
	var label string
	if title != "" && middle >= 4 {
		label = " " + util.TruncateWidth(util.SingleLine(title), middle-3) + " "
	}
	rest := middle - util.StringWidth(label)
	if label != "" {
		rest--
	}

	line := model.Line{{Text: left, Style: style}}
	if label != "" {
		line = append(line,
			model.Span{Text: fill, Style: style},
			model.Span{Text: label, Style: style.Bold(true)},
		)
	}
	line = append(line,
		model.Span{Text: strings.Repeat(fill, max(rest, 0)), Style: style},
		model.Span{Text: right, Style: style},
	)
	return line
}
