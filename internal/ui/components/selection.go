// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// SELECTION OVERLAY
// =============================================================================

const (
	// SelectionPreviewMax is the longest preview shown in the popup,
	// ellipsis included.
	SelectionPreviewMax = 30
	selectionPopupTitle = "Selection"
	selectionPopupHint  = "c copy · esc dismiss"
)

// Area is a rectangle of the screen in cell coordinates.
type Area struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether p lies inside the area.
func (a Area) Contains(p model.Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width && p.Y >= a.Y && p.Y < a.Y+a.Height
}

// SelectionSpan is the highlighted part of one row. Row and columns are
// relative to the area; To is exclusive.
type SelectionSpan struct {
	Row  int
	From int
	To   int
}

// NormalizeSelection orders the corners so start comes first in reading
// order.
func NormalizeSelection(sel model.Selection) (start, end model.Point) {
	start, end = sel.Start, sel.End
	if end.Y < start.Y || (end.Y == start.Y && end.X < start.X) {
		start, end = end, start
	}
	return start, end
}

// SelectionSpans returns the highlighted span of every row the selection
// covers inside the area. Interior rows span the full width; the first and
// last rows stop at the selection corners.
func SelectionSpans(sel model.Selection, area Area) []SelectionSpan {
	if area.Width <= 0 || area.Height <= 0 {
		return nil
	}
	start, end := NormalizeSelection(sel)

	top := max(start.Y, area.Y)
	bottom := min(end.Y, area.Y+area.Height-1)

	spans := make([]SelectionSpan, 0, max(bottom-top+1, 0))
	for y := top; y <= bottom; y++ {
		from, to := area.X, area.X+area.Width
		if y == start.Y {
			from = start.X
		}
		if y == end.Y {
			to = end.X + 1
		}
		from = min(max(from, area.X), area.X+area.Width)
		to = min(max(to, area.X), area.X+area.Width)
		if from >= to {
			continue
		}
		spans = append(spans, SelectionSpan{Row: y - area.Y, From: from - area.X, To: to - area.X})
	}
	return spans
}

// ApplySelection returns rows with the spans redrawn in style over the
// plain cell text.
func ApplySelection(rows []string, spans []SelectionSpan, style lipgloss.Style) []string {
	out := make([]string, len(rows))
	copy(out, rows)

	for _, span := range spans {
		if span.Row < 0 || span.Row >= len(out) {
			continue
		}
		row := out[span.Row]
		width := ansi.StringWidth(row)
		if span.From >= width {
			continue
		}
		to := min(span.To, width)

		left := ansi.Cut(row, 0, span.From)
		mid := ansi.Strip(ansi.Cut(row, span.From, to))
		right := ansi.Cut(row, to, width)
		out[span.Row] = left + style.Render(mid) + right
	}
	return out
}

// CaptureSelection extracts the plain text under the spans. Rows are
// joined with newlines and trailing blanks are dropped.
func CaptureSelection(rows []string, spans []SelectionSpan) string {
	parts := make([]string, 0, len(spans))
	for _, span := range spans {
		if span.Row < 0 || span.Row >= len(rows) {
			continue
		}
		text := ansi.Strip(ansi.Cut(rows[span.Row], span.From, span.To))
		parts = append(parts, strings.TrimRight(text, " "))
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

// SelectionPreview is the single-line, length-capped form of captured text.
func SelectionPreview(text string) string {
	return util.TruncateRunes(strings.TrimSpace(util.SingleLine(text)), SelectionPreviewMax)
}

// ShowSelectionPopup reports whether the capture popup should be drawn.
func ShowSelectionPopup(sel *model.Selection) bool {
	return sel != nil && !sel.InProgress && sel.Text != ""
}

// RenderSelectionPopup draws the capture popup sized to its content and
// no wider than maxWidth.
func RenderSelectionPopup(text string, maxWidth int, theme *styles.Theme) []model.Line {
	content := []model.Line{
		model.NewLine(selectionPopupTitle, theme.PopupTitle),
		model.NewLine(SelectionPreview(text), theme.PopupPreview),
		model.NewLine(selectionPopupHint, theme.PopupHint),
	}

	inner := 0
	for _, line := range content {
		inner = max(inner, line.Width())
	}
	chrome := 2 + theme.PopupBox.GetPaddingLeft() + theme.PopupBox.GetPaddingRight()
	width := min(inner+chrome, maxWidth)
	return Box(content, width, theme.PopupBox, "")
}

// Overlay draws the overlay rows on top of base with their top-left corner
// at (x, y). Base rows are expected to be width cells wide.
func Overlay(base, overlay []string, x, y, width int) []string {
	out := make([]string, len(base))
	copy(out, base)
	if width <= 0 || x >= width || y >= len(base) {
		return out
	}
	x, y = max(x, 0), max(y, 0)

	for i, line := range overlay {
		row := y + i
		if row >= len(out) {
			break
		}
		w := min(ansi.StringWidth(line), width-x)
		left := ansi.Cut(out[row], 0, x)
		right := ansi.Cut(out[row], x+w, width)
		out[row] = left + ansi.Truncate(line, w, "") + right
	}
	return out
}
