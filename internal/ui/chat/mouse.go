// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/components"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

// =============================================================================
// MOUSE
// =============================================================================

// handleMouse scrolls on the wheel and tracks drag selections over the
// message area.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	area := m.frame.MessageArea
	p := model.Point{X: msg.X, Y: msg.Y}
	sel := m.state.Selection
	dragging := sel != nil && sel.InProgress

	switch msg.Type {
	case tea.MouseWheelUp:
		m.state.Scroll = m.frame.Scroll.Up(m.state.Scroll, wheelLines)

	case tea.MouseWheelDown:
		m.state.Scroll = m.frame.Scroll.Down(m.state.Scroll, wheelLines)

	case tea.MouseLeft:
		if dragging {
			m.extendSelection(clampToArea(p, area))
			break
		}
		if m.state.Dialog != nil || !area.Contains(p) {
			// A click outside the messages dismisses a captured selection.
			m.state.Selection = nil
			return nil
		}
		m.state.Selection = &model.Selection{Start: p, End: p, InProgress: true}

	case tea.MouseMotion:
		if dragging {
			m.extendSelection(clampToArea(p, area))
		}

	case tea.MouseRelease:
		if !dragging {
			return nil
		}
		next := *sel
		next.End = clampToArea(p, area)
		next.InProgress = false
		next.Text = components.CaptureSelection(m.frame.MessageRows, components.SelectionSpans(next, area))
		if next.Text == "" {
			m.state.Selection = nil
			return nil
		}
		m.state.Selection = &next
		log.Printf("SELECTION_CAPTURED | chars=%d", len([]rune(next.Text)))
	}
	return nil
}

func (m *Model) extendSelection(p model.Point) {
	next := *m.state.Selection
	next.End = p
	m.state.Selection = &next
}

// clampToArea moves p onto the nearest cell inside area.
func clampToArea(p model.Point, area components.Area) model.Point {
	if area.Width <= 0 || area.Height <= 0 {
		return p
	}
	p.X = min(max(p.X, area.X), area.X+area.Width-1)
	p.Y = min(max(p.Y, area.Y), area.Y+area.Height-1)
	return p
}
