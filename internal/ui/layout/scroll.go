// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"fmt"
	"sort"

	"github.com/jeranaias/rigrun-term/internal/model"
)

// =============================================================================
// SCROLL CONTROLLER
// =============================================================================

// RemapMode selects how a raw-line scroll offset maps onto the processed
// line sequence.
type RemapMode string

const (
	// RemapScale rescales proportionally: raw * processed / raw_len.
	RemapScale RemapMode = "scale"
	// RemapAnchor keeps the raw line at the top of the viewport at the top
	// by looking up where the tag processor placed it.
	RemapAnchor RemapMode = "anchor"
)

// ParseRemapMode validates a configured remap mode.
func ParseRemapMode(s string) (RemapMode, error) {
	switch RemapMode(s) {
	case RemapScale, RemapAnchor:
		return RemapMode(s), nil
	case "":
		return RemapScale, nil
	}
	return "", fmt.Errorf("unknown scroll remap mode %q (want scale or anchor)", s)
}

// ScrollInput is what Resolve needs from the current frame.
type ScrollInput struct {
	State        model.ScrollState
	RawLen       int
	ProcessedLen int
	Viewport     int
	// Origins maps raw line index to its first processed line. Only the
	// anchor mode reads it.
	Origins []int
	Mode    RemapMode
}

// ScrollGeometry is the resolved scroll position of one frame. The raw
// fields express the same position in the units ScrollState is kept in.
type ScrollGeometry struct {
	Offset    int
	MaxScroll int
	RawTop    int
	RawMax    int
	Viewport  int
}

// Resolve computes the processed offset for this frame.
//
// Pinned state always shows the bottom. Otherwise the raw offset is
// remapped and clamped to [0, MaxScroll].
func Resolve(in ScrollInput) ScrollGeometry {
	viewport := max(in.Viewport, 0)
	processed := max(in.ProcessedLen, 0)
	raw := max(in.RawLen, 0)

	g := ScrollGeometry{
		MaxScroll: sub(processed, viewport),
		Viewport:  viewport,
	}

	if in.State.Pinned {
		g.Offset = g.MaxScroll
	} else {
		g.Offset = min(remap(in, raw, processed), g.MaxScroll)
	}

	g.RawTop = unmap(in, raw, processed, g.Offset)
	g.RawMax = unmap(in, raw, processed, g.MaxScroll)
	return g
}

func remap(in ScrollInput, raw, processed int) int {
	offset := max(in.State.Offset, 0)
	if raw == 0 {
		return offset
	}
	offset = min(offset, raw)

	if in.Mode == RemapAnchor && len(in.Origins) == raw {
		if offset == raw {
			return processed
		}
		return in.Origins[offset]
	}
	return offset * processed / raw
}

// unmap converts a processed offset back to raw units.
func unmap(in ScrollInput, raw, processed, offset int) int {
	if processed == 0 || raw == 0 {
		return offset
	}

	if in.Mode == RemapAnchor && len(in.Origins) == raw {
		// Last raw line whose output starts at or before offset.
		i := sort.Search(raw, func(i int) bool { return in.Origins[i] > offset })
		return max(i-1, 0)
	}

	// Round up so remapping the result lands at or past offset.
	return min((offset*raw+processed-1)/processed, raw)
}

// =============================================================================
// SCROLL ACTIONS
// =============================================================================

// Up scrolls towards older content by n raw lines. A pinned view unpins
// from where it currently shows.
func (g ScrollGeometry) Up(s model.ScrollState, n int) model.ScrollState {
	start := s.Offset
	if s.Pinned || start > g.RawMax {
		start = g.RawMax
	}
	return model.ScrollState{Offset: sub(start, max(n, 0))}
}

// Down scrolls towards newer content by n raw lines. Reaching the bottom
// pins the view again.
func (g ScrollGeometry) Down(s model.ScrollState, n int) model.ScrollState {
	if s.Pinned {
		return s
	}
	offset := s.Offset + max(n, 0)
	if offset >= g.RawMax {
		return g.Bottom()
	}
	return model.ScrollState{Offset: offset}
}

// PageUp scrolls up by one viewport.
func (g ScrollGeometry) PageUp(s model.ScrollState) model.ScrollState {
	return g.Up(s, max(g.Viewport, 1))
}

// PageDown scrolls down by one viewport.
func (g ScrollGeometry) PageDown(s model.ScrollState) model.ScrollState {
	return g.Down(s, max(g.Viewport, 1))
}

// Top jumps to the oldest content.
func (g ScrollGeometry) Top() model.ScrollState {
	return model.ScrollState{Offset: 0, Pinned: g.RawMax == 0}
}

// Bottom pins the view to the newest content.
func (g ScrollGeometry) Bottom() model.ScrollState {
	return model.ScrollState{Offset: g.RawMax, Pinned: true}
}

// =============================================================================
// VISIBLE WINDOW
// =============================================================================

// Visible returns exactly height lines starting at offset, padded with
// blank lines when the sequence runs out.
func Visible(lines []model.Line, offset, height int) []model.Line {
	height = max(height, 0)
	window := make([]model.Line, 0, height)
	offset = max(offset, 0)
	for i := offset; i < len(lines) && len(window) < height; i++ {
		window = append(window, lines[i])
	}
	for len(window) < height {
		window = append(window, model.BlankLine())
	}
	return window
}
