// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package editor holds the input buffer and its byte-offset cursor.
//
// The cursor always sits on a grapheme cluster boundary, so one arrow press
// moves over a whole user-perceived character (an emoji with modifiers, a
// letter with combining marks).
package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Buffer is an editable UTF-8 string with a cursor.
type Buffer struct {
	text   string
	cursor int
}

// New returns a buffer holding text with the cursor at the end.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// Text returns the buffer contents.
func (b *Buffer) Text() string { return b.text }

// Cursor returns the cursor byte offset.
func (b *Buffer) Cursor() int { return b.cursor }

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int { return len(b.text) }

// Empty reports whether the buffer has no text.
func (b *Buffer) Empty() bool { return b.text == "" }

// SetText replaces the contents and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.text = strings.ToValidUTF8(text, "\uFFFD")
	b.cursor = len(b.text)
}

// SetCursor moves the cursor, clamped and snapped back to a boundary.
func (b *Buffer) SetCursor(pos int) {
	b.cursor = b.snap(pos)
}

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.text = ""
	b.cursor = 0
}

// =============================================================================
// EDITING
// =============================================================================

// Insert adds s at the cursor. Pasted text is NFC-normalised so combining
// sequences take as few cells as possible; carriage returns become newlines.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	s = strings.ToValidUTF8(s, "\uFFFD")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = norm.NFC.String(s)

	b.text = b.text[:b.cursor] + s + b.text[b.cursor:]
	b.cursor += len(s)
}

// InsertRune adds a single character at the cursor.
func (b *Buffer) InsertRune(r rune) {
	b.Insert(string(r))
}

// Backspace deletes the grapheme before the cursor.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	prev := b.prevBoundary(b.cursor)
	b.text = b.text[:prev] + b.text[b.cursor:]
	b.cursor = prev
	return true
}

// Delete removes the grapheme under the cursor.
func (b *Buffer) Delete() bool {
	if b.cursor >= len(b.text) {
		return false
	}
	next := b.nextBoundary(b.cursor)
	b.text = b.text[:b.cursor] + b.text[next:]
	return true
}

// DeleteWordBackward removes the word before the cursor and the spaces
// between it and the cursor.
func (b *Buffer) DeleteWordBackward() bool {
	start := b.wordStart(b.cursor)
	if start == b.cursor {
		return false
	}
	b.text = b.text[:start] + b.text[b.cursor:]
	b.cursor = start
	return true
}

// KillLine removes everything from the cursor to the end of its line.
func (b *Buffer) KillLine() bool {
	end := b.lineEnd(b.cursor)
	if end == b.cursor {
		return false
	}
	b.text = b.text[:b.cursor] + b.text[end:]
	return true
}

// =============================================================================
// MOVEMENT
// =============================================================================

// Left moves back one grapheme.
func (b *Buffer) Left() { b.cursor = b.prevBoundary(b.cursor) }

// Right moves forward one grapheme.
func (b *Buffer) Right() { b.cursor = b.nextBoundary(b.cursor) }

// Home moves to the start of the current line.
func (b *Buffer) Home() { b.cursor = b.lineStart(b.cursor) }

// End moves to the end of the current line.
func (b *Buffer) End() { b.cursor = b.lineEnd(b.cursor) }

// WordLeft moves to the start of the previous word.
func (b *Buffer) WordLeft() { b.cursor = b.wordStart(b.cursor) }

// WordRight moves past the end of the next word.
func (b *Buffer) WordRight() {
	pos := b.cursor
	for pos < len(b.text) && isSpaceAt(b.text, pos) {
		pos = b.nextBoundary(pos)
	}
	for pos < len(b.text) && !isSpaceAt(b.text, pos) {
		pos = b.nextBoundary(pos)
	}
	b.cursor = pos
}

// Up moves to the previous logical line, keeping the grapheme column where
// possible. It reports false on the first line.
func (b *Buffer) Up() bool {
	start := b.lineStart(b.cursor)
	if start == 0 {
		return false
	}
	col := b.column(start, b.cursor)
	prevStart := b.lineStart(start - 1)
	b.cursor = b.advance(prevStart, start-1, col)
	return true
}

// Down moves to the next logical line. It reports false on the last line.
func (b *Buffer) Down() bool {
	end := b.lineEnd(b.cursor)
	if end >= len(b.text) {
		return false
	}
	col := b.column(b.lineStart(b.cursor), b.cursor)
	nextStart := end + 1
	b.cursor = b.advance(nextStart, b.lineEnd(nextStart), col)
	return true
}

// =============================================================================
// BOUNDARIES
// =============================================================================

// graphemeStarts returns the byte offset of every grapheme boundary,
// including len(text).
func graphemeStarts(text string) []int {
	starts := make([]int, 0, len(text)+1)
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		starts = append(starts, pos)
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	return append(starts, pos)
}

func (b *Buffer) snap(pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(b.text) {
		return len(b.text)
	}
	starts := graphemeStarts(b.text)
	snapped := 0
	for _, s := range starts {
		if s > pos {
			break
		}
		snapped = s
	}
	return snapped
}

func (b *Buffer) prevBoundary(pos int) int {
	prev := 0
	for _, s := range graphemeStarts(b.text) {
		if s >= pos {
			break
		}
		prev = s
	}
	return prev
}

func (b *Buffer) nextBoundary(pos int) int {
	for _, s := range graphemeStarts(b.text) {
		if s > pos {
			return s
		}
	}
	return len(b.text)
}

func (b *Buffer) lineStart(pos int) int {
	return strings.LastIndexByte(b.text[:pos], '\n') + 1
}

func (b *Buffer) lineEnd(pos int) int {
	if i := strings.IndexByte(b.text[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(b.text)
}

// column counts graphemes between two offsets on one line.
func (b *Buffer) column(from, to int) int {
	return uniseg.GraphemeClusterCount(b.text[from:to])
}

// advance moves col graphemes from start without passing limit.
func (b *Buffer) advance(start, limit, col int) int {
	pos := start
	for i := 0; i < col && pos < limit; i++ {
		pos = b.nextBoundary(pos)
	}
	return min(pos, limit)
}

func (b *Buffer) wordStart(pos int) int {
	for pos > 0 && isSpaceAt(b.text, b.prevBoundary(pos)) {
		pos = b.prevBoundary(pos)
	}
	for pos > 0 && !isSpaceAt(b.text, b.prevBoundary(pos)) {
		pos = b.prevBoundary(pos)
	}
	return pos
}

func isSpaceAt(s string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return r == ' ' || r == '\t' || r == '\n'
}
