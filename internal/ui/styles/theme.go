// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	SystemMessage    lipgloss.Style
	Spinner          lipgloss.Style
	SpinnerText      lipgloss.Style

	// ==========================================================================
	// STRUCTURED SECTION STYLES
	// ==========================================================================

	SectionTitle    lipgloss.Style
	CheckpointRule  lipgloss.Style
	CheckpointLabel lipgloss.Style
	CheckpointID    lipgloss.Style
	ModeIcon        lipgloss.Style
	ModeLabel       lipgloss.Style
	ModeValue       lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputBorder      lipgloss.Style
	InputBorderShell lipgloss.Style
	Prompt           lipgloss.Style
	ShellPrompt      lipgloss.Style
	InputText        lipgloss.Style
	Cursor           lipgloss.Style

	// ==========================================================================
	// DROPDOWN AND HINT STYLES
	// ==========================================================================

	DropdownItem     lipgloss.Style
	DropdownSelected lipgloss.Style
	Hint             lipgloss.Style
	ShortcutKey      lipgloss.Style
	ShortcutDesc     lipgloss.Style

	// ==========================================================================
	// DIALOG STYLES
	// ==========================================================================

	ConfirmBox          lipgloss.Style
	DialogTitle         lipgloss.Style
	DialogOption        lipgloss.Style
	DialogOptionActive  lipgloss.Style
	SessionBox          lipgloss.Style
	SessionItem         lipgloss.Style
	SessionItemSelected lipgloss.Style
	SessionMeta         lipgloss.Style

	// ==========================================================================
	// SELECTION STYLES
	// ==========================================================================

	Selection    lipgloss.Style
	PopupBox     lipgloss.Style
	PopupTitle   lipgloss.Style
	PopupPreview lipgloss.Style
	PopupHint    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Messages
	t.UserMessage = lipgloss.NewStyle().Foreground(UserFg).Bold(true)
	t.AssistantMessage = lipgloss.NewStyle().Foreground(AssistantFg)
	t.SystemMessage = lipgloss.NewStyle().Foreground(SystemFg)
	t.Spinner = lipgloss.NewStyle().Foreground(Purple)
	t.SpinnerText = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)

	// Structured sections
	t.SectionTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Underline(true)

	t.CheckpointRule = lipgloss.NewStyle().Foreground(Overlay)
	t.CheckpointLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.CheckpointID = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	t.ModeIcon = lipgloss.NewStyle().Foreground(Emerald)
	t.ModeLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.ModeValue = lipgloss.NewStyle().Foreground(Emerald).Bold(true)

	// Input
	t.InputBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputBorderShell = t.InputBorder.BorderForeground(Magenta)

	t.Prompt = lipgloss.NewStyle().Foreground(TextSecondary)
	t.ShellPrompt = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.InputText = lipgloss.NewStyle().Foreground(TextPrimary)

	t.Cursor = lipgloss.NewStyle().
		Background(Cyan).
		Foreground(TextInverse).
		Bold(true)

	// Dropdown and hint
	t.DropdownItem = lipgloss.NewStyle().Foreground(TextSecondary)

	t.DropdownSelected = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		Reverse(true)

	t.Hint = lipgloss.NewStyle().Foreground(TextMuted)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)

	// Dialogs
	t.ConfirmBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 1)

	t.DialogTitle = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	t.DialogOption = lipgloss.NewStyle().Foreground(TextSecondary)
	t.DialogOptionActive = lipgloss.NewStyle().Foreground(Cyan).Bold(true).Reverse(true)

	t.SessionBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.SessionItem = lipgloss.NewStyle().Foreground(TextPrimary)
	t.SessionItemSelected = lipgloss.NewStyle().Foreground(Purple).Bold(true).Reverse(true)
	t.SessionMeta = lipgloss.NewStyle().Foreground(TextMuted)

	// Selection
	t.Selection = lipgloss.NewStyle().Reverse(true)

	t.PopupBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.PopupTitle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.PopupPreview = lipgloss.NewStyle().Foreground(TextPrimary)
	t.PopupHint = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
}
