// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package wrap implements the word-wrap engine shared by message rendering,
// input rendering and layout sizing.
//
// Text is split on explicit line breaks first; each segment is then packed
// greedily word by word. The very first output line can be narrowed to leave
// room for a prompt. A word that does not fit on an empty line is placed on
// its own line without hyphenation, and that line is then cut into rows of
// at most the line width, so no visible cell ever falls past the edge.
// Whitespace is never dropped: the run of whitespace where a line is broken
// stays at the end of the line it follows, where it may hang past the edge,
// so concatenating the lines of a segment gives the segment back.
//
// Count and Layout share one packing routine, so the height used for layout
// always equals the number of lines that are rendered.
package wrap

import (
	"unicode"
	"unicode/utf8"

	"github.com/jeranaias/rigrun-term/internal/util"
)

// Fragment is one output line expressed as a byte range of the source text.
type Fragment struct {
	Start int
	End   int
	// Wrapped is true when the line starts at an inserted break rather than
	// at the start of the text or after an explicit line break.
	Wrapped bool
}

// Layout wraps s and returns one fragment per output line.
//
// width is the full line width in cells; reserve narrows only the first
// output line of the whole text (for a prompt prefix).
func Layout(s string, width, reserve int) []Fragment {
	frags := make([]Fragment, 0, 4)
	pack(s, width, reserve, func(f Fragment) {
		frags = append(frags, f)
	})
	return frags
}

// Lines wraps s and returns the text of each output line.
func Lines(s string, width, reserve int) []string {
	lines := make([]string, 0, 4)
	pack(s, width, reserve, func(f Fragment) {
		lines = append(lines, s[f.Start:f.End])
	})
	return lines
}

// Count returns the number of output lines Lines would produce.
func Count(s string, width, reserve int) int {
	n := 0
	pack(s, width, reserve, func(Fragment) {
		n++
	})
	return n
}

// pack is the single packing routine behind Layout, Lines and Count.
func pack(s string, width, reserve int, emit func(Fragment)) {
	if width < 0 {
		width = 0
	}
	firstLimit := width - reserve
	if firstLimit < 0 {
		firstLimit = 0
	}

	emitted := 0
	limit := func() int {
		if emitted == 0 {
			return firstLimit
		}
		return width
	}

	// flush emits one packed line, cutting its visible part into rows that
	// fit. Every row holds at least one character.
	flush := func(start, end int, wrapped bool) {
		visEnd := end
		for visEnd > start {
			r, size := utf8.DecodeLastRuneInString(s[start:visEnd])
			if !unicode.IsSpace(r) {
				break
			}
			visEnd -= size
		}
		for width > 0 && start < visEnd {
			lim := limit()
			cut, cells := start, 0
			for cut < visEnd {
				r, size := utf8.DecodeRuneInString(s[cut:visEnd])
				rw := util.RuneWidth(r)
				if cells+rw > lim && cut > start {
					break
				}
				cells += rw
				cut += size
			}
			if cut >= visEnd {
				break
			}
			emit(Fragment{Start: start, End: cut, Wrapped: wrapped})
			emitted++
			start = cut
			wrapped = true
		}
		emit(Fragment{Start: start, End: end, Wrapped: wrapped})
		emitted++
	}

	segStart := 0
	for {
		segEnd := segStart
		for segEnd < len(s) && s[segEnd] != '\n' {
			segEnd++
		}

		lineStart := segStart
		lineWidth := 0
		lineHasWord := false
		wrapped := false

		pos := segStart
		for pos < segEnd {
			wsWidth := 0
			for pos < segEnd {
				r, size := utf8.DecodeRuneInString(s[pos:segEnd])
				if !unicode.IsSpace(r) {
					break
				}
				wsWidth += util.RuneWidth(r)
				pos += size
			}
			wordStart := pos
			wordWidth := 0
			for pos < segEnd {
				r, size := utf8.DecodeRuneInString(s[pos:segEnd])
				if unicode.IsSpace(r) {
					break
				}
				wordWidth += util.RuneWidth(r)
				pos += size
			}

			switch {
			case wordStart == pos:
				// Trailing whitespace hangs on the current line.
				lineWidth += wsWidth
			case !lineHasWord:
				lineWidth += wsWidth + wordWidth
				lineHasWord = true
			case lineWidth+wsWidth+wordWidth <= limit():
				lineWidth += wsWidth + wordWidth
			default:
				flush(lineStart, wordStart, wrapped)
				lineStart = wordStart
				lineWidth = wordWidth
				wrapped = true
			}
		}

		flush(lineStart, segEnd, wrapped)

		if segEnd >= len(s) {
			return
		}
		segStart = segEnd + 1
	}
}
