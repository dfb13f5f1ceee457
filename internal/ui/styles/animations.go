// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// Spinners maps the configurable spinner names to their frame sets.
var Spinners = map[string]spinner.Spinner{
	"dot":     spinner.Dot,
	"line":    spinner.Line,
	"minidot": spinner.MiniDot,
	"points":  spinner.Points,
}

// DefaultSpinner is used when the configured name is unknown.
const DefaultSpinner = "minidot"

// SpinnerFor returns the frame set for name, falling back to DefaultSpinner.
func SpinnerFor(name string) spinner.Spinner {
	if s, ok := Spinners[name]; ok {
		return s
	}
	return Spinners[DefaultSpinner]
}

// SpinnerFrame returns the frame shown at the given phase. Negative phases
// are treated as zero.
func SpinnerFrame(s spinner.Spinner, phase int) string {
	if len(s.Frames) == 0 {
		return ""
	}
	if phase < 0 {
		phase = 0
	}
	return s.Frames[phase%len(s.Frames)]
}

// SpinnerInterval returns the delay between frames, never less than a 60th
// of a second.
func SpinnerInterval(s spinner.Spinner) time.Duration {
	if s.FPS < time.Second/60 {
		return time.Second / 60
	}
	return s.FPS
}
