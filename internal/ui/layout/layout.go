// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

// =============================================================================
// VIEWPORT LAYOUT SOLVER
// =============================================================================

const (
	// InputChrome is the number of rows the input border adds.
	InputChrome = 2
	// HintRows is the height of the collapsed help hint.
	HintRows = 2
	// DialogMarginRows separates the message area from an open dialog.
	DialogMarginRows = 1
)

// Params describes the dynamic content the layout depends on.
type Params struct {
	Width  int
	Height int

	// InputLines is the wrapped line count of the input buffer.
	InputLines int
	// DropdownEntries is zero when the dropdown is not showing.
	DropdownEntries int
	// DialogHeight is zero when no dialog is open.
	DialogHeight int
	// ShortcutRows replaces the hint when the shortcut list is toggled on.
	ShowShortcuts bool
	ShortcutRows  int
}

// Rect is a full-width horizontal band of the screen.
type Rect struct {
	Y      int
	Width  int
	Height int
}

// Regions are the six stacked screen areas, top to bottom.
type Regions struct {
	Messages     Rect
	DialogMargin Rect
	Dialog       Rect
	Input        Rect
	Dropdown     Rect
	Hint         Rect
}

// Modal reports whether a dialog occupies the screen.
func (r Regions) Modal() bool {
	return r.Dialog.Height > 0
}

// Total returns the summed height of all regions.
func (r Regions) Total() int {
	return r.Messages.Height + r.DialogMargin.Height + r.Dialog.Height +
		r.Input.Height + r.Dropdown.Height + r.Hint.Height
}

// Solve computes the region heights.
//
// With a dialog open, input, dropdown and hint collapse to zero. When the
// screen is too short, regions give up rows in this order: hint, dropdown,
// dialog margin, input, dialog. The message area keeps at least one row as
// long as the screen has one.
func Solve(p Params) Regions {
	width := max(p.Width, 0)
	height := max(p.Height, 0)

	var margin, dialog, input, dropdown, hint int
	if p.DialogHeight > 0 {
		margin = DialogMarginRows
		dialog = p.DialogHeight
	} else {
		input = max(p.InputLines, 1) + InputChrome
		dropdown = max(p.DropdownEntries, 0)
		switch {
		case dropdown > 0:
			hint = 0
		case p.ShowShortcuts:
			hint = max(p.ShortcutRows, 0)
		default:
			hint = HintRows
		}
	}

	// Grant rows in reverse shrink order out of what the message area spares.
	remaining := sub(height, min(height, 1))
	take := func(want int) int {
		got := min(want, remaining)
		remaining -= got
		return got
	}
	dialog = take(dialog)
	input = take(input)
	margin = take(margin)
	dropdown = take(dropdown)
	hint = take(hint)

	messages := sub(height, dialog+input+margin+dropdown+hint)

	var r Regions
	y := 0
	place := func(h int) Rect {
		rect := Rect{Y: y, Width: width, Height: h}
		y += h
		return rect
	}
	r.Messages = place(messages)
	r.DialogMargin = place(margin)
	r.Dialog = place(dialog)
	r.Input = place(input)
	r.Dropdown = place(dropdown)
	r.Hint = place(hint)
	return r
}

// sub is saturating subtraction.
func sub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
