// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/ui/wrap"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// CONFIRMATION DIALOG
// =============================================================================

// SummaryPlaceholder is shown when a command payload cannot be read.
const SummaryPlaceholder = "…"

// confirmBaseHeight covers the borders, one title line, the spacer and the
// two options.
const confirmBaseHeight = 6

var confirmOptions = [model.ChoiceCount]string{"Yes", "No"}

// CommandSummary extracts a readable command from a tool-call payload. The
// fields tried, in order: command, the command inside a JSON-encoded
// function.arguments, function.name, name.
func CommandSummary(payload string) string {
	if !gjson.Valid(payload) {
		return SummaryPlaceholder
	}
	call := gjson.Parse(payload)

	if s := summaryField(call.Get("command")); s != "" {
		return s
	}

	if args := call.Get("function.arguments"); args.Exists() {
		inner := args
		if args.Type == gjson.String && gjson.Valid(args.Str) {
			inner = gjson.Parse(args.Str)
		}
		if s := summaryField(inner.Get("command")); s != "" {
			return s
		}
	}

	for _, path := range []string{"function.name", "name"} {
		if s := summaryField(call.Get(path)); s != "" {
			return s
		}
	}
	return SummaryPlaceholder
}

// summaryField accepts a string or an argv-style array.
func summaryField(r gjson.Result) string {
	switch {
	case r.Type == gjson.String:
		return strings.TrimSpace(util.SingleLine(r.Str))
	case r.IsArray():
		parts := make([]string, 0, len(r.Array()))
		for _, part := range r.Array() {
			if part.Type == gjson.String {
				parts = append(parts, part.Str)
			}
		}
		return strings.TrimSpace(util.SingleLine(strings.Join(parts, " ")))
	}
	return ""
}

// confirmTitle returns the wrapped title lines for the given dialog width.
func confirmTitle(c *model.Confirmation, width int, theme *styles.Theme) []string {
	title := "Run command: " + CommandSummary(c.Payload)
	return wrap.Lines(title, BoxInnerWidth(width, theme.ConfirmBox), 0)
}

// ConfirmationHeight returns the rows RenderConfirmation produces.
func ConfirmationHeight(c *model.Confirmation, width int, theme *styles.Theme) int {
	return confirmBaseHeight + len(confirmTitle(c, width, theme)) - 1
}

// RenderConfirmation draws the command approval dialog. The active option
// is reversed; an out-of-range selection is clamped.
func RenderConfirmation(c *model.Confirmation, width int, theme *styles.Theme) []model.Line {
	selected := model.ClampIndex(c.Selected, model.ChoiceCount)

	title := confirmTitle(c, width, theme)
	content := make([]model.Line, 0, len(title)+3)
	for _, line := range title {
		content = append(content, model.NewLine(line, theme.DialogTitle))
	}
	content = append(content, model.BlankLine())

	for i, option := range confirmOptions {
		if i == selected {
			content = append(content, model.Line{
				{Text: "› "},
				{Text: " " + option + " ", Style: theme.DialogOptionActive},
			})
			continue
		}
		content = append(content, model.Line{
			{Text: "  "},
			{Text: " " + option + " ", Style: theme.DialogOption},
		})
	}

	return Box(content, width, theme.ConfirmBox, "Confirm")
}
