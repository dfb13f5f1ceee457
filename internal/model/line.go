// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// DISPLAY LINE
// =============================================================================

// Span is a run of text sharing one style.
type Span struct {
	Text  string
	Style lipgloss.Style
}

// Line is one terminal row before placement: an ordered list of spans.
type Line []Span

// NewLine builds a single-span line.
func NewLine(text string, style lipgloss.Style) Line {
	return Line{{Text: text, Style: style}}
}

// BlankLine returns an empty line.
func BlankLine() Line {
	return Line{}
}

// Text returns the concatenated unstyled text of the line.
func (l Line) Text() string {
	if len(l) == 1 {
		return l[0].Text
	}
	var b strings.Builder
	for _, span := range l {
		b.WriteString(span.Text)
	}
	return b.String()
}

// Width returns the display width of the line.
func (l Line) Width() int {
	width := 0
	for _, span := range l {
		width += util.StringWidth(span.Text)
	}
	return width
}

// Fit returns the line cut to at most width cells and padded with spaces to
// exactly width. A wide character that would straddle the edge is dropped.
func (l Line) Fit(width int) Line {
	if width <= 0 {
		return Line{}
	}
	out := make(Line, 0, len(l)+1)
	used := 0
	for _, span := range l {
		w := util.StringWidth(span.Text)
		if used+w > width {
			if text := util.TruncateWidth(span.Text, width-used); text != "" {
				out = append(out, Span{Text: text, Style: span.Style})
				used += util.StringWidth(text)
			}
			break
		}
		if span.Text != "" {
			out = append(out, span)
			used += w
		}
	}
	if used < width {
		out = append(out, Span{Text: strings.Repeat(" ", width-used)})
	}
	return out
}

// Render returns the line as a styled string. Control characters are shown as
// spaces so the rendered width matches Width.
func (l Line) Render() string {
	var b strings.Builder
	for _, span := range l {
		if span.Text == "" {
			continue
		}
		b.WriteString(span.Style.Render(sanitize(span.Text)))
	}
	return b.String()
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, s)
}
