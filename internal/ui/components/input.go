// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/wrap"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// CURSOR-AWARE INPUT RENDERER
// =============================================================================

// DefaultMaskGlyph replaces every character of a masked input.
const DefaultMaskGlyph = '*'

// InputOptions configures RenderInput.
type InputOptions struct {
	// Width is the wrap width of the text area in cells.
	Width int
	// Prompt is drawn before the first line and reserved on it.
	Prompt      string
	PromptStyle lipgloss.Style
	TextStyle   lipgloss.Style
	CursorStyle lipgloss.Style
	// Masked replaces every character with MaskGlyph.
	Masked    bool
	MaskGlyph rune
}

// InputView is the rendered input buffer.
type InputView struct {
	Lines []model.Line
	// CursorLine and CursorCol locate the cursor cell inside Lines; the
	// column includes the prompt.
	CursorLine int
	CursorCol  int
}

// InputLineCount returns the number of rows RenderInput produces for the
// same buffer, cursor and options. Layout sizing uses it.
func InputLineCount(buffer string, cursor int, opts InputOptions) int {
	display, cursor := displayText(buffer, cursor, opts)
	frags := wrap.Layout(display, opts.Width, util.StringWidth(opts.Prompt))
	if _, spill := locateCursor(display, cursor, frags, opts); spill {
		return len(frags) + 1
	}
	return len(frags)
}

// locateCursor returns the fragment that draws the cursor and whether the
// cursor cell would start at or past the right edge. Such a cursor moves to
// a continuation row of its own, together with the hanging whitespace after
// it.
func locateCursor(display string, cursor int, frags []wrap.Fragment, opts InputOptions) (owner int, spill bool) {
	for i, frag := range frags {
		// The cursor belongs to this fragment if it points inside it, or at
		// its end when no wrapped continuation picks it up.
		endsSegment := i == len(frags)-1 || !frags[i+1].Wrapped
		if cursor < frag.Start || cursor > frag.End || (cursor == frag.End && !endsSegment) {
			continue
		}
		col := util.StringWidth(display[frag.Start:cursor])
		if i == 0 {
			col += util.StringWidth(opts.Prompt)
		}
		return i, opts.Width > 0 && col >= opts.Width
	}
	return len(frags) - 1, false
}

// RenderInput wraps the buffer like any other text and marks exactly one
// cell as the cursor at the given byte offset. When the cursor sits at the
// end of a line segment a highlighted space is appended instead.
//
// The cursor is clamped to the buffer and moved back to a character
// boundary. With masking on, the offset still refers to the original buffer.
func RenderInput(buffer string, cursor int, opts InputOptions) InputView {
	display, cursor := displayText(buffer, cursor, opts)
	frags := wrap.Layout(display, opts.Width, util.StringWidth(opts.Prompt))
	owner, spill := locateCursor(display, cursor, frags, opts)

	w := inputWalker{opts: opts}
	view := InputView{Lines: make([]model.Line, 0, len(frags)+1)}

	for i, frag := range frags {
		if i == 0 && opts.Prompt != "" {
			w.emitRun(opts.Prompt, opts.PromptStyle)
		}
		if i != owner {
			w.emitRun(display[frag.Start:frag.End], opts.TextStyle)
			view.Lines = append(view.Lines, w.flushLine())
			continue
		}

		w.emitRun(display[frag.Start:cursor], opts.TextStyle)
		if spill {
			view.Lines = append(view.Lines, w.flushLine())
		}
		if cursor < frag.End {
			r, size := utf8.DecodeRuneInString(display[cursor:])
			w.emitCursor(string(r))
			w.emitRun(display[cursor+size:frag.End], opts.TextStyle)
		} else {
			w.emitCursor(" ")
		}
		view.CursorLine = len(view.Lines)
		view.CursorCol = w.cursorCol
		view.Lines = append(view.Lines, w.flushLine())
	}

	return view
}

// inputWalker is the emit-run / emit-cursor / flush-line state machine that
// builds the styled rows.
type inputWalker struct {
	opts InputOptions

	line      model.Line
	col       int
	cursorCol int
}

func (w *inputWalker) emitRun(text string, style lipgloss.Style) {
	if text == "" {
		return
	}
	w.line = append(w.line, model.Span{Text: text, Style: style})
	w.col += util.StringWidth(text)
}

func (w *inputWalker) emitCursor(text string) {
	w.cursorCol = w.col
	w.line = append(w.line, model.Span{Text: text, Style: w.opts.CursorStyle})
	w.col += util.StringWidth(text)
}

func (w *inputWalker) flushLine() model.Line {
	line := w.line
	if line == nil {
		line = model.BlankLine()
	}
	w.line = nil
	w.col = 0
	return line
}

// displayText returns the text to lay out and the cursor translated into it.
func displayText(buffer string, cursor int, opts InputOptions) (string, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(buffer) {
		cursor = len(buffer)
	}
	for cursor > 0 && cursor < len(buffer) && !utf8.RuneStart(buffer[cursor]) {
		cursor--
	}
	if !opts.Masked {
		return buffer, cursor
	}

	glyph := opts.MaskGlyph
	if glyph == 0 || util.RuneWidth(glyph) != 1 {
		glyph = DefaultMaskGlyph
	}
	mask := string(glyph)
	count := utf8.RuneCountInString(buffer)
	return strings.Repeat(mask, count), utf8.RuneCountInString(buffer[:cursor]) * len(mask)
}
