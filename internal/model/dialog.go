// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// DIALOG VARIANT
// =============================================================================

// Dialog is the active modal overlay. A nil Dialog means no dialog is open;
// otherwise it is exactly one of *Confirmation or *SessionPicker, so the two
// can never be open at the same time.
type Dialog interface {
	dialog()
}

// Confirmation choices.
const (
	ChoiceYes   = 0
	ChoiceNo    = 1
	ChoiceCount = 2
)

// Confirmation asks the user to approve a pending command.
type Confirmation struct {
	// Payload is the structured command as received from the backend,
	// usually a JSON tool call.
	Payload string
	// Selected is ChoiceYes or ChoiceNo.
	Selected int
}

// SessionPicker lists stored sessions for the user to resume.
type SessionPicker struct {
	Sessions []SessionSummary
	Selected int
}

func (*Confirmation) dialog()  {}
func (*SessionPicker) dialog() {}

// ClampIndex bounds i to [0, n-1]; it returns 0 when n is zero.
func ClampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
