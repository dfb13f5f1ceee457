// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-term/internal/model"
)

func TestResolveScale(t *testing.T) {
	tests := []struct {
		name      string
		in        ScrollInput
		offset    int
		maxScroll int
	}{
		{
			name:      "pinned shows bottom",
			in:        ScrollInput{State: model.ScrollState{Pinned: true}, RawLen: 40, ProcessedLen: 50, Viewport: 10},
			offset:    40,
			maxScroll: 40,
		},
		{
			name:      "rescaled",
			in:        ScrollInput{State: model.ScrollState{Offset: 10}, RawLen: 40, ProcessedLen: 50, Viewport: 10},
			offset:    12,
			maxScroll: 40,
		},
		{
			name:      "clamped to max",
			in:        ScrollInput{State: model.ScrollState{Offset: 39}, RawLen: 40, ProcessedLen: 50, Viewport: 20},
			offset:    30,
			maxScroll: 30,
		},
		{
			name:      "content shorter than viewport",
			in:        ScrollInput{State: model.ScrollState{Offset: 5}, RawLen: 4, ProcessedLen: 6, Viewport: 20},
			offset:    0,
			maxScroll: 0,
		},
		{
			name:      "no raw lines",
			in:        ScrollInput{State: model.ScrollState{Offset: 7}, RawLen: 0, ProcessedLen: 0, Viewport: 5},
			offset:    0,
			maxScroll: 0,
		},
		{
			name:      "huge offset",
			in:        ScrollInput{State: model.ScrollState{Offset: 1 << 60}, RawLen: 10, ProcessedLen: 30, Viewport: 5},
			offset:    25,
			maxScroll: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Resolve(tt.in)
			assert.Equal(t, tt.offset, g.Offset)
			assert.Equal(t, tt.maxScroll, g.MaxScroll)
		})
	}
}

func TestResolveInvariant(t *testing.T) {
	for _, mode := range []RemapMode{RemapScale, RemapAnchor} {
		for raw := 0; raw <= 12; raw++ {
			origins := make([]int, raw)
			processed := 0
			for i := range origins {
				origins[i] = processed
				processed += 1 + i%3
			}
			for viewport := 0; viewport <= 15; viewport++ {
				for offset := 0; offset <= raw+3; offset++ {
					for _, pinned := range []bool{false, true} {
						g := Resolve(ScrollInput{
							State:        model.ScrollState{Offset: offset, Pinned: pinned},
							RawLen:       raw,
							ProcessedLen: processed,
							Viewport:     viewport,
							Origins:      origins,
							Mode:         mode,
						})
						if g.Offset < 0 || g.Offset > g.MaxScroll {
							t.Fatalf("%s raw=%d processed=%d viewport=%d offset=%d: got %d, max %d",
								mode, raw, processed, viewport, offset, g.Offset, g.MaxScroll)
						}
					}
				}
			}
		}
	}
}

func TestResolveAnchor(t *testing.T) {
	// Raw line 2 gained a blank line and a header in front of it.
	origins := []int{0, 1, 2, 5, 6, 7, 8, 9, 10, 11}
	in := ScrollInput{
		State:        model.ScrollState{Offset: 3},
		RawLen:       10,
		ProcessedLen: 12,
		Viewport:     4,
		Origins:      origins,
		Mode:         RemapAnchor,
	}

	g := Resolve(in)
	assert.Equal(t, 5, g.Offset)
	assert.Equal(t, 3, g.RawTop)

	// Without origins the anchor mode falls back to scaling.
	in.Origins = nil
	g = Resolve(in)
	assert.Equal(t, 3, g.Offset)
}

func TestParseRemapMode(t *testing.T) {
	mode, err := ParseRemapMode("")
	require.NoError(t, err)
	assert.Equal(t, RemapScale, mode)

	mode, err = ParseRemapMode("anchor")
	require.NoError(t, err)
	assert.Equal(t, RemapAnchor, mode)

	_, err = ParseRemapMode("nearest")
	assert.Error(t, err)
}

func TestScrollActions(t *testing.T) {
	g := Resolve(ScrollInput{
		State:        model.ScrollState{Pinned: true},
		RawLen:       30,
		ProcessedLen: 30,
		Viewport:     10,
	})
	require.Equal(t, 20, g.RawMax)
	require.Equal(t, 20, g.RawTop)

	// Scrolling up from a pinned view starts at what is on screen.
	s := g.Up(model.ScrollState{Pinned: true}, 3)
	assert.Equal(t, model.ScrollState{Offset: 17}, s)

	s = g.Up(s, 100)
	assert.Equal(t, model.ScrollState{Offset: 0}, s)

	s = g.Down(s, 5)
	assert.Equal(t, model.ScrollState{Offset: 5}, s)

	s = g.PageDown(s)
	assert.Equal(t, model.ScrollState{Offset: 15}, s)

	// Reaching the bottom pins again.
	s = g.PageDown(s)
	assert.Equal(t, model.ScrollState{Offset: 20, Pinned: true}, s)

	s = g.PageUp(s)
	assert.Equal(t, model.ScrollState{Offset: 10}, s)

	assert.Equal(t, model.ScrollState{Offset: 0}, g.Top())
	assert.Equal(t, model.ScrollState{Offset: 20, Pinned: true}, g.Bottom())
}

func TestScrollActionsShortContent(t *testing.T) {
	g := Resolve(ScrollInput{RawLen: 3, ProcessedLen: 4, Viewport: 10})

	assert.True(t, g.Top().Pinned)
	assert.True(t, g.Down(model.ScrollState{}, 1).Pinned)
	assert.Equal(t, model.ScrollState{}, g.Up(model.ScrollState{Pinned: true}, 1))
}

func TestScaleRoundTrip(t *testing.T) {
	// The raw bottom maps back to the processed bottom.
	for raw := 1; raw <= 20; raw++ {
		for processed := raw; processed <= raw*3; processed++ {
			for viewport := 1; viewport <= processed; viewport++ {
				g := Resolve(ScrollInput{State: model.ScrollState{Pinned: true}, RawLen: raw, ProcessedLen: processed, Viewport: viewport})
				back := Resolve(ScrollInput{State: model.ScrollState{Offset: g.RawMax}, RawLen: raw, ProcessedLen: processed, Viewport: viewport})
				if back.Offset != g.MaxScroll {
					t.Fatalf("raw=%d processed=%d viewport=%d: raw max %d maps to %d, want %d",
						raw, processed, viewport, g.RawMax, back.Offset, g.MaxScroll)
				}
			}
		}
	}
}

func TestVisible(t *testing.T) {
	lines := []model.Line{
		model.NewLine("a", lipgloss.NewStyle()),
		model.NewLine("b", lipgloss.NewStyle()),
		model.NewLine("c", lipgloss.NewStyle()),
	}

	tests := []struct {
		offset int
		height int
		want   []string
	}{
		{0, 2, []string{"a", "b"}},
		{1, 2, []string{"b", "c"}},
		{2, 3, []string{"c", "", ""}},
		{5, 2, []string{"", ""}},
		{-1, 1, []string{"a"}},
		{0, 0, []string{}},
	}

	for _, tt := range tests {
		got := Visible(lines, tt.offset, tt.height)
		texts := make([]string, len(got))
		for i, line := range got {
			texts[i] = line.Text()
		}
		assert.Equal(t, tt.want, texts, "offset %d height %d", tt.offset, tt.height)
	}
}
