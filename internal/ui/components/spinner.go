// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
)

// =============================================================================
// LOADING SPINNER
// =============================================================================

// SpinnerLine is the transient line shown below the messages while the
// backend is working.
func SpinnerLine(frame, label string, theme *styles.Theme) model.Line {
	if label == "" {
		label = "Thinking..."
	}
	return model.Line{
		{Text: frame, Style: theme.Spinner},
		{Text: " " + label, Style: theme.SpinnerText},
	}
}
