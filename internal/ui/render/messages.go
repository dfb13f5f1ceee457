// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/wrap"
)

// =============================================================================
// RAW LINE SEQUENCE
// =============================================================================

// RawLines flattens the messages into display lines. Plain messages are
// wrapped at width with their style; pre-built lines are copied as they
// are. Consecutive messages are separated by one blank line.
func RawLines(messages []model.Message, width int) []model.Line {
	lines := make([]model.Line, 0, len(messages)*2)
	for i, msg := range messages {
		if i > 0 {
			lines = append(lines, model.BlankLine())
		}
		switch msg.Kind {
		case model.KindPlain:
			for _, text := range wrap.Lines(msg.Text, width, 0) {
				lines = append(lines, model.NewLine(text, msg.Style))
			}
		case model.KindStyled:
			if len(msg.Lines) > 0 {
				lines = append(lines, msg.Lines[0])
			}
		case model.KindBlock:
			lines = append(lines, msg.Lines...)
		}
	}
	return lines
}
