// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/components"
	"github.com/jeranaias/rigrun-term/internal/ui/layout"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// DefaultPrompt and DefaultShellPrompt prefix the first input line.
const (
	DefaultPrompt      = "> "
	DefaultShellPrompt = " $ "
)

// Options carries everything Render needs besides the state.
type Options struct {
	Theme       *styles.Theme
	Prompt      string
	ShellPrompt string
	MaskGlyph   rune
	Spinner     spinner.Spinner
	// SpinnerLabel follows the spinner frame while loading.
	SpinnerLabel string
	RemapMode    layout.RemapMode
	DropdownMax  int
	// Shortcuts are listed in the hint region when expanded.
	Shortcuts []key.Binding
	// Now is the reference time for relative session timestamps.
	Now time.Time
}

func (o Options) withDefaults() Options {
	if o.Theme == nil {
		o.Theme = styles.NewTheme()
	}
	if o.Prompt == "" {
		o.Prompt = DefaultPrompt
	}
	if o.ShellPrompt == "" {
		o.ShellPrompt = DefaultShellPrompt
	}
	if o.MaskGlyph == 0 {
		o.MaskGlyph = components.DefaultMaskGlyph
	}
	if len(o.Spinner.Frames) == 0 {
		o.Spinner = styles.SpinnerFor(styles.DefaultSpinner)
	}
	if o.RemapMode == "" {
		o.RemapMode = layout.RemapScale
	}
	if o.DropdownMax <= 0 {
		o.DropdownMax = components.DefaultDropdownMax
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// =============================================================================
// FRAME
// =============================================================================

// Frame is one painted screen plus the geometry the application reads back.
type Frame struct {
	// Rows holds exactly Height rows of exactly Width cells each.
	Rows    []string
	Width   int
	Height  int
	Regions layout.Regions
	Scroll  layout.ScrollGeometry

	// MessageArea is where the message rows were placed; selection
	// coordinates are interpreted against it.
	MessageArea components.Area
	// MessageRows are the message area rows before the selection overlay.
	MessageRows []string

	RawLen       int
	ProcessedLen int

	// Cursor is the screen cell of the input cursor; CursorVisible is false
	// while a dialog is open or the cursor row was cut off.
	Cursor        model.Point
	CursorVisible bool
}

// String joins the rows into one printable block.
func (f Frame) String() string {
	return strings.Join(f.Rows, "\n")
}

// =============================================================================
// RENDER
// =============================================================================

// Render paints the state into a frame. It never fails: degenerate sizes
// produce an empty frame and out-of-range indices are clamped.
func Render(state *model.AppState, opts Options) Frame {
	opts = opts.withDefaults()
	theme := opts.Theme

	width := max(state.Width, 0)
	height := max(state.Height, 0)
	frame := Frame{Width: width, Height: height}

	// Input sizing uses the same wrap as the input renderer.
	inputOpts := inputOptions(state, opts, width)
	inputLines := components.InputLineCount(state.Input, state.Cursor, inputOpts)

	dialog := activeDialog(state.Dialog)
	dialogHeight := 0
	switch d := dialog.(type) {
	case *model.Confirmation:
		dialogHeight = components.ConfirmationHeight(d, width, theme)
	case *model.SessionPicker:
		dialogHeight = components.SessionPickerHeight(height - 1 - layout.DialogMarginRows)
	}
	if dialog != nil {
		dialogHeight = max(dialogHeight, 1)
	}

	regions := layout.Solve(layout.Params{
		Width:           width,
		Height:          height,
		InputLines:      inputLines,
		DropdownEntries: components.DropdownHeight(state.Helpers, state.Input, opts.DropdownMax),
		DialogHeight:    dialogHeight,
		ShowShortcuts:   state.ShowShortcuts,
		ShortcutRows:    components.ShortcutRows(opts.Shortcuts),
	})
	frame.Regions = regions

	// Messages: wrap, then rewrite tags, then scroll.
	raw := RawLines(state.Messages, width)
	if state.Loading {
		spin := styles.SpinnerFrame(opts.Spinner, state.SpinnerPhase)
		raw = append(raw, components.SpinnerLine(spin, opts.SpinnerLabel, theme))
	}
	processed := components.ProcessTags(raw, width, theme)

	frame.RawLen = len(raw)
	frame.ProcessedLen = len(processed.Lines)
	frame.Scroll = layout.Resolve(layout.ScrollInput{
		State:        state.Scroll,
		RawLen:       len(raw),
		ProcessedLen: len(processed.Lines),
		Viewport:     regions.Messages.Height,
		Origins:      processed.Origins,
		Mode:         opts.RemapMode,
	})
	frame.MessageArea = components.Area{
		X:      0,
		Y:      regions.Messages.Y,
		Width:  width,
		Height: regions.Messages.Height,
	}

	visible := layout.Visible(processed.Lines, frame.Scroll.Offset, regions.Messages.Height)
	messageRows := paint(visible, width, len(visible))
	frame.MessageRows = messageRows
	messageRows = overlaySelection(messageRows, state.Selection, frame.MessageArea, theme)

	rows := make([]string, 0, height)
	rows = append(rows, messageRows...)
	rows = append(rows, paint(nil, width, regions.DialogMargin.Height)...)

	switch d := dialog.(type) {
	case *model.Confirmation:
		rows = append(rows, paint(components.RenderConfirmation(d, width, theme), width, regions.Dialog.Height)...)
	case *model.SessionPicker:
		lines := components.RenderSessionPicker(d, width, regions.Dialog.Height, opts.Now, theme)
		rows = append(rows, paint(lines, width, regions.Dialog.Height)...)
	}

	if regions.Input.Height > 0 {
		view := components.RenderInput(state.Input, state.Cursor, inputOpts)
		border := theme.InputBorder
		if state.ShellMode {
			border = theme.InputBorderShell
		}
		rows = append(rows, paint(components.Box(view.Lines, width, border, ""), width, regions.Input.Height)...)

		cursorRow := 1 + view.CursorLine
		inner := components.BoxInnerWidth(width, border)
		if cursorRow < regions.Input.Height-1 && view.CursorCol < inner {
			frame.Cursor = model.Point{
				X: 1 + border.GetPaddingLeft() + view.CursorCol,
				Y: regions.Input.Y + cursorRow,
			}
			frame.CursorVisible = true
		}
	}

	rows = append(rows, paint(components.RenderDropdown(state.Helpers, regions.Dropdown.Height, theme), width, regions.Dropdown.Height)...)
	if regions.Hint.Height > 0 {
		rows = append(rows, paint(components.RenderHint(state.ShowShortcuts, opts.Shortcuts, theme), width, regions.Hint.Height)...)
	}

	frame.Rows = rows
	return frame
}

// activeDialog treats typed nil pointers as no dialog.
func activeDialog(d model.Dialog) model.Dialog {
	switch v := d.(type) {
	case *model.Confirmation:
		if v == nil {
			return nil
		}
	case *model.SessionPicker:
		if v == nil {
			return nil
		}
	}
	return d
}

// inputOptions configures the input renderer for the current mode.
func inputOptions(state *model.AppState, opts Options, width int) components.InputOptions {
	theme := opts.Theme
	in := components.InputOptions{
		Width:       components.BoxInnerWidth(width, theme.InputBorder),
		Prompt:      opts.Prompt,
		PromptStyle: theme.Prompt,
		TextStyle:   theme.InputText,
		CursorStyle: theme.Cursor,
		Masked:      state.Masked,
		MaskGlyph:   opts.MaskGlyph,
	}
	if state.ShellMode {
		in.Prompt = opts.ShellPrompt
		in.PromptStyle = theme.ShellPrompt
	}
	return in
}

// paint renders exactly height rows of exactly width cells, cutting or
// padding the lines as needed.
func paint(lines []model.Line, width, height int) []string {
	rows := make([]string, 0, max(height, 0))
	for i := 0; i < height; i++ {
		var line model.Line
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, line.Fit(width).Render())
	}
	return rows
}

// overlaySelection highlights the dragged region and, once a capture is
// done, centres the capture popup over the message area.
func overlaySelection(rows []string, sel *model.Selection, area components.Area, theme *styles.Theme) []string {
	if sel == nil || area.Height <= 0 || area.Width <= 0 {
		return rows
	}

	spans := components.SelectionSpans(*sel, area)
	rows = components.ApplySelection(rows, spans, theme.Selection)

	if !components.ShowSelectionPopup(sel) {
		return rows
	}
	popup := components.RenderSelectionPopup(sel.Text, area.Width, theme)
	popupRows := make([]string, len(popup))
	popupWidth := 0
	for i, line := range popup {
		popupRows[i] = line.Render()
		popupWidth = max(popupWidth, line.Width())
	}
	x := (area.Width - popupWidth) / 2
	y := max((area.Height-len(popup))/2, 0)
	return components.Overlay(rows, popupRows, x, y, area.Width)
}
