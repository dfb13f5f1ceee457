// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/wrap"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// cursorStyle is distinguishable from the zero style even without colour.
var cursorStyle = lipgloss.NewStyle().Reverse(true)

func testInputOptions(width int) InputOptions {
	return InputOptions{
		Width:       width,
		Prompt:      "> ",
		CursorStyle: cursorStyle,
	}
}

// cursorSpans returns the (line, span) positions styled as the cursor.
func cursorSpans(lines []model.Line) [][2]int {
	var found [][2]int
	for i, line := range lines {
		for j, span := range line {
			if span.Style.GetReverse() {
				found = append(found, [2]int{i, j})
			}
		}
	}
	return found
}

func TestRenderInputSingleLine(t *testing.T) {
	view := RenderInput("hello world", 5, testInputOptions(20))

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "> hello world", view.Lines[0].Text())

	spans := cursorSpans(view.Lines)
	require.Len(t, spans, 1)
	assert.Equal(t, " ", view.Lines[0][spans[0][1]].Text)
	assert.Equal(t, 0, view.CursorLine)
	assert.Equal(t, 7, view.CursorCol)
}

func TestRenderInputEmpty(t *testing.T) {
	view := RenderInput("", 0, testInputOptions(20))

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "> ", strings.TrimSuffix(view.Lines[0].Text(), " "))
	spans := cursorSpans(view.Lines)
	require.Len(t, spans, 1)
	assert.Equal(t, " ", view.Lines[0][spans[0][1]].Text)
	assert.Equal(t, 2, view.CursorCol)
}

func TestRenderInputCursorAtEnd(t *testing.T) {
	view := RenderInput("abc", 3, testInputOptions(20))

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "> abc ", view.Lines[0].Text())
	assert.Equal(t, 5, view.CursorCol)
}

func TestRenderInputCursorOnNewline(t *testing.T) {
	view := RenderInput("ab\ncd", 2, testInputOptions(20))

	require.Len(t, view.Lines, 2)
	assert.Equal(t, "> ab ", view.Lines[0].Text())
	assert.Equal(t, "cd", view.Lines[1].Text())
	assert.Equal(t, 0, view.CursorLine)

	view = RenderInput("ab\ncd", 3, testInputOptions(20))
	assert.Equal(t, 1, view.CursorLine)
	assert.Equal(t, 0, view.CursorCol)
}

func TestRenderInputCursorOnEmptySegment(t *testing.T) {
	view := RenderInput("a\n\nb", 2, testInputOptions(20))

	require.Len(t, view.Lines, 3)
	assert.Equal(t, 1, view.CursorLine)
	assert.Equal(t, " ", view.Lines[1].Text())
}

func TestRenderInputWrapped(t *testing.T) {
	// "> hello " fills the first line; "world" wraps.
	view := RenderInput("hello world", 8, testInputOptions(8))

	require.Len(t, view.Lines, 2)
	assert.Equal(t, "> hello ", view.Lines[0].Text())
	assert.Equal(t, "world", view.Lines[1].Text())
	assert.Equal(t, 1, view.CursorLine)
	assert.Equal(t, 2, view.CursorCol)
}

func TestRenderInputCursorStaysInsideWidth(t *testing.T) {
	tests := []struct {
		name   string
		buffer string
		cursor int
		lines  []string
		line   int
		col    int
	}{
		{
			name:   "end of a full line",
			buffer: "abcdefgh",
			cursor: 8,
			lines:  []string{"> abcdefgh", " "},
			line:   1,
			col:    0,
		},
		{
			name:   "inside a long word",
			buffer: "abcdefghijklmnopqrstu",
			cursor: 17,
			lines:  []string{"> abcdefgh", "ijklmnopqr", "stu"},
			line:   1,
			col:    9,
		},
		{
			name:   "long word continues on the next row",
			buffer: "abcdefghijklmnopqrstu",
			cursor: 18,
			lines:  []string{"> abcdefgh", "ijklmnopqr", "stu"},
			line:   2,
			col:    0,
		},
		{
			name:   "end of a long word",
			buffer: "abcdefghijklmnopqrstu",
			cursor: 21,
			lines:  []string{"> abcdefgh", "ijklmnopqr", "stu "},
			line:   2,
			col:    3,
		},
		{
			name:   "whitespace hanging past the edge",
			buffer: "abcdefgh    xy",
			cursor: 8,
			lines:  []string{"> abcdefgh", "    ", "xy"},
			line:   1,
			col:    0,
		},
		{
			name:   "after hanging whitespace",
			buffer: "abcdefgh    xy",
			cursor: 12,
			lines:  []string{"> abcdefgh    ", "xy"},
			line:   1,
			col:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testInputOptions(10)
			view := RenderInput(tt.buffer, tt.cursor, opts)

			texts := make([]string, len(view.Lines))
			for i, line := range view.Lines {
				texts[i] = line.Text()
			}
			assert.Equal(t, tt.lines, texts)
			assert.Equal(t, len(view.Lines), InputLineCount(tt.buffer, tt.cursor, opts))
			require.Len(t, cursorSpans(view.Lines), 1)
			assert.Equal(t, tt.line, view.CursorLine)
			assert.Equal(t, tt.col, view.CursorCol)
			assert.Less(t, view.CursorCol, opts.Width)
		})
	}
}

func TestRenderInputClampsCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		line   int
		col    int
	}{
		{"negative", -4, 0, 2},
		{"past end", 99, 0, 6},
		// Byte 2 is inside the two-byte é; the cursor moves back to it.
		{"mid rune", 2, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := RenderInput("c\u00e9f\u00e9", tt.cursor, testInputOptions(20))
			assert.Len(t, cursorSpans(view.Lines), 1)
			assert.Equal(t, tt.line, view.CursorLine)
			assert.Equal(t, tt.col, view.CursorCol)
		})
	}
}

func TestRenderInputMasked(t *testing.T) {
	opts := testInputOptions(20)
	opts.Masked = true
	opts.MaskGlyph = '•'

	view := RenderInput("s\u00e9cret", 3, opts)

	require.Len(t, view.Lines, 1)
	assert.Equal(t, "> ••••••", view.Lines[0].Text())
	assert.NotContains(t, view.Lines[0].Text(), "s")
	// Byte 3 follows "sé", two characters in.
	assert.Equal(t, 4, view.CursorCol)
}

func TestRenderInputMaskedNewlines(t *testing.T) {
	opts := testInputOptions(20)
	opts.Masked = true

	view := RenderInput("ab\ncd", 5, opts)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "> ***** ", view.Lines[0].Text())
}

func TestRenderInputWideCursorChar(t *testing.T) {
	view := RenderInput("日本", 0, testInputOptions(20))

	spans := cursorSpans(view.Lines)
	require.Len(t, spans, 1)
	cursor := view.Lines[0][spans[0][1]]
	assert.Equal(t, "日", cursor.Text)
	assert.Equal(t, 2, util.StringWidth(cursor.Text))
}

func TestRenderInputMatchesLineCount(t *testing.T) {
	buffers := []string{
		"",
		"hello world",
		"a long line of input that will wrap a few times at narrow widths",
		"first\nsecond line\n\nfourth",
		"supercalifragilisticexpialidocious word",
		"trailing spaces     ",
		"日本語のテキスト 日本語のテキスト",
	}

	for _, buffer := range buffers {
		for width := 3; width <= 30; width++ {
			opts := testInputOptions(width)
			for cursor := 0; cursor <= len(buffer); cursor++ {
				view := RenderInput(buffer, cursor, opts)
				want := InputLineCount(buffer, cursor, opts)
				if len(view.Lines) != want {
					t.Fatalf("RenderInput(%q, %d) width %d: %d lines, want %d",
						buffer, cursor, width, len(view.Lines), want)
				}
				if n := len(cursorSpans(view.Lines)); n != 1 {
					t.Fatalf("RenderInput(%q, %d) width %d: %d cursor cells, want 1",
						buffer, cursor, width, n)
				}
			}
		}
	}
}

func TestRenderInputCursorFollowsLayout(t *testing.T) {
	buffer := "the quick brown fox\njumps over the lazy dog"
	opts := testInputOptions(12)
	frags := wrap.Layout(buffer, 12, 2)

	for cursor := 0; cursor <= len(buffer); cursor++ {
		view := RenderInput(buffer, cursor, opts)

		// The cursor line is the last fragment starting at or before it
		// that is not past a line break.
		wantLine := 0
		for i, frag := range frags {
			if frag.Start <= cursor {
				wantLine = i
			}
		}
		frag := frags[wantLine]
		if cursor > frag.End {
			t.Fatalf("cursor %d outside fragment %+v", cursor, frag)
		}
		wantCol := util.StringWidth(buffer[frag.Start:cursor])
		if wantLine == 0 {
			wantCol += 2
		}
		// A cursor that would start at the edge moves to its own row.
		if wantCol >= 12 {
			wantLine++
			wantCol = 0
		}

		assert.Equal(t, wantLine, view.CursorLine, "cursor %d line", cursor)
		assert.Equal(t, wantCol, view.CursorCol, "cursor %d col", cursor)
	}
}
