// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// WIDTH MODEL
// =============================================================================

// widthCondition pins the East Asian ambiguous characters to a single cell so
// that layout does not depend on the user's locale environment.
var widthCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RuneWidth returns the number of terminal cells r occupies: 0 for combining
// and other zero-width marks, 2 for wide and fullwidth characters, 1 for
// everything else. Control characters have no defined width and count as 1.
func RuneWidth(r rune) int {
	if unicode.IsControl(r) || r == unicode.ReplacementChar {
		return 1
	}
	w := widthCondition.RuneWidth(r)
	if w > 2 {
		return 2
	}
	return w
}

// StringWidth returns the display width of s as the sum of RuneWidth.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += RuneWidth(r)
	}
	return width
}
