// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wrap

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// LINE MATERIALIZATION TESTS
// =============================================================================

func TestLines(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		width   int
		reserve int
		want    []string
	}{
		{"fits on one line", "hello world", 20, 2, []string{"hello world"}},
		{"breaks between words", "hello world", 8, 0, []string{"hello ", "world"}},
		{"exact fit", "aaa bbb ccc", 7, 0, []string{"aaa bbb ", "ccc"}},
		{"reserve narrows first line only", "aaa bbb ccc ddd", 7, 2, []string{"aaa ", "bbb ccc ", "ddd"}},
		{"explicit breaks keep blank lines", "a\n\nb", 10, 0, []string{"a", "", "b"}},
		{"long word cut at the edge", "supercalifragilistic x", 5, 0, []string{"super", "calif", "ragil", "istic ", "x"}},
		{"long word after reserve", "abcdefgh", 5, 2, []string{"abc", "defgh"}},
		{"wide long word", "日本語のテ", 4, 0, []string{"日本", "語の", "テ"}},
		{"wide characters", "日本 語", 4, 0, []string{"日本 ", "語"}},
		{"empty input", "", 10, 0, []string{""}},
		{"whitespace only", "   ", 10, 0, []string{"   "}},
		{"leading indentation counts", "  x y", 4, 0, []string{"  x ", "y"}},
		{"trailing newline", "abc\n", 10, 0, []string{"abc", ""}},
		{"zero width", "a b", 0, 0, []string{"a ", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Lines(tc.input, tc.width, tc.reserve)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, len(got), Count(tc.input, tc.width, tc.reserve), "Count must agree with Lines")
		})
	}
}

func TestLayoutMarksInsertedBreaks(t *testing.T) {
	frags := Layout("one two\nthree", 4, 0)
	require.Len(t, frags, 3)

	assert.False(t, frags[0].Wrapped)
	assert.True(t, frags[1].Wrapped, "second line comes from an inserted break")
	assert.False(t, frags[2].Wrapped, "line after an explicit break is not wrapped")
}

// =============================================================================
// PROPERTY TESTS
// =============================================================================

var propertyInputs = []string{
	"",
	"hello world",
	"the quick brown fox jumps over the lazy dog",
	"  indented line with   several    spaces  ",
	"first paragraph\n\nsecond paragraph that is a bit longer than the first",
	"日本語のテキスト と 混在 mixed text",
	"emoji 😀 sequence 😀😀 done",
	"verylongwordwithoutanyspacesatallthatexceedseverywidth tail",
	"tabs\tand\tspaces mixed\n\ttrailing\t",
	"é combining marks éé",
	"\n\n\n",
}

func reconstruct(s string, frags []Fragment) string {
	var b strings.Builder
	for i, f := range frags {
		if i > 0 && !f.Wrapped {
			b.WriteByte('\n')
		}
		b.WriteString(s[f.Start:f.End])
	}
	return b.String()
}

func TestWrapReproducesInput(t *testing.T) {
	for _, input := range propertyInputs {
		for width := 2; width <= 40; width++ {
			frags := Layout(input, width, 2)
			if got := reconstruct(input, frags); got != input {
				t.Fatalf("width %d: reconstructed %q, want %q", width, got, input)
			}
		}
	}
}

func TestWrapHeightMonotonic(t *testing.T) {
	for _, input := range propertyInputs {
		prev := Count(input, 2, 2)
		for width := 3; width <= 60; width++ {
			n := Count(input, width, 2)
			if n > prev {
				t.Fatalf("%q: height grew from %d to %d when width widened to %d", input, prev, n, width)
			}
			prev = n
		}
	}
}

func TestWrapKeepsVisibleCellsInsideWidth(t *testing.T) {
	for _, input := range propertyInputs {
		for width := 2; width <= 40; width++ {
			for i, line := range Lines(input, width, 2) {
				limit := width
				if i == 0 {
					limit = width - 2
				}
				visible := strings.TrimRightFunc(line, unicode.IsSpace)
				if utf8.RuneCountInString(visible) > 1 && util.StringWidth(visible) > limit {
					t.Fatalf("%q width %d line %d: %q is %d cells, limit %d",
						input, width, i, visible, util.StringWidth(visible), limit)
				}
			}
		}
	}
}

func TestWrapIsDeterministic(t *testing.T) {
	input := propertyInputs[4]
	first := Lines(input, 13, 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Lines(input, 13, 2))
	}
}
