// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for rigrun-term.

# Color System (colors.go)

All colors are Lip Gloss AdaptiveColor values so the same theme works on
light and dark terminals:

	Purple   - section titles, session picker
	Cyan     - cursor, checkpoint ids, selection popup
	Emerald  - agent mode badge
	Amber    - confirmation dialog, shell prompt
	Magenta  - shell mode input border

# Theme (theme.go)

Theme groups every lipgloss.Style used by the renderer. NewTheme detects the
terminal color profile through termenv.

# Animations (animations.go)

Spinner frame sets come from bubbles/spinner. The renderer is stateless, so
the application passes a phase counter and SpinnerFrame picks the frame.
*/
package styles
