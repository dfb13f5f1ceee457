// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// STRUCTURED TAG PROCESSOR
// =============================================================================

// SectionTags is the closed set of section names the backend may wrap
// message content in. Any other tag name is shown as plain text.
var SectionTags = []string{
	"planning",
	"reasoning",
	"notes",
	"progress",
	"local_context",
	"todo",
	"application_analysis",
	"scratchpad",
	"report",
	"current_context",
	"rulebooks",
	"current_analysis",
}

// SpacingSentinel is the line content upstream formatting uses to force a
// blank line.
const SpacingSentinel = "SPACING_MARKER"

const (
	checkpointOpen  = "<checkpoint_id>"
	checkpointClose = "</checkpoint_id>"
	agentModeOpen   = "<agent_mode>"
	agentModeClose  = "</agent_mode>"
)

// TagResult is the processed line sequence plus its mapping back to the raw
// lines.
type TagResult struct {
	Lines []model.Line
	// Origins[i] is the index in Lines of the first line emitted for raw
	// line i, including any blank line inserted before it.
	Origins []int
}

// ProcessTags rewrites inline section markers into formatted lines in a
// single forward pass. Per raw line, the first matching rule wins:
// checkpoint, agent mode, closing section tag, opening section tag, spacing
// sentinel, passthrough. A blank line is inserted before checkpoints, agent
// modes and section openings unless the line is the very first one.
//
// width is the frame width, used to size the checkpoint rule.
func ProcessTags(raw []model.Line, width int, theme *styles.Theme) TagResult {
	result := TagResult{
		Lines:   make([]model.Line, 0, len(raw)+len(raw)/4),
		Origins: make([]int, len(raw)),
	}

	for i, line := range raw {
		text := line.Text()
		trimmed := strings.TrimSpace(text)
		result.Origins[i] = len(result.Lines)

		hasCheckpoint := strings.Contains(text, checkpointOpen)
		hasAgentMode := strings.Contains(text, agentModeOpen)
		opening := openingTag(text)

		if i > 0 && (hasCheckpoint || hasAgentMode || opening != "") {
			result.Lines = append(result.Lines, model.BlankLine())
		}

		switch {
		case hasCheckpoint:
			id := markerPayload(text, checkpointOpen, checkpointClose)
			result.Lines = append(result.Lines, CheckpointBadge(id, width, theme))
		case hasAgentMode:
			mode := markerPayload(text, agentModeOpen, agentModeClose)
			result.Lines = append(result.Lines, AgentModeBadge(mode, theme))
		case isClosingTag(trimmed):
			result.Lines = append(result.Lines, model.BlankLine())
		case opening != "":
			rest := strings.TrimSpace(strings.NewReplacer("<"+opening+">", "", "</"+opening+">", "").Replace(text))
			result.Lines = append(result.Lines, SectionTitle(opening, rest, lineStyle(line), theme))
		case trimmed == SpacingSentinel:
			result.Lines = append(result.Lines, model.BlankLine())
		default:
			result.Lines = append(result.Lines, line)
		}
	}

	return result
}

// openingTag returns the first section name whose opening tag appears in
// text, or "".
func openingTag(text string) string {
	if !strings.Contains(text, "<") {
		return ""
	}
	for _, tag := range SectionTags {
		if strings.Contains(text, "<"+tag+">") {
			return tag
		}
	}
	return ""
}

func isClosingTag(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "</") || !strings.HasSuffix(trimmed, ">") {
		return false
	}
	name := trimmed[2 : len(trimmed)-1]
	for _, tag := range SectionTags {
		if name == tag {
			return true
		}
	}
	return false
}

// markerPayload returns the trimmed text between open and close. A missing
// close marker takes the rest of the line.
func markerPayload(text, open, close string) string {
	start := strings.Index(text, open)
	if start < 0 {
		return ""
	}
	rest := text[start+len(open):]
	if end := strings.Index(rest, close); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// lineStyle returns the style of the first span so text kept next to a
// section title keeps its message colour.
func lineStyle(line model.Line) lipgloss.Style {
	if len(line) == 0 {
		return lipgloss.NewStyle()
	}
	return line[0].Style
}

// =============================================================================
// BADGES AND TITLES
// =============================================================================

// SectionTitleText converts a tag name to its heading, e.g. local_context
// becomes "Local Context".
func SectionTitleText(tag string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(tag, "_", " "))
}

// SectionTitle renders the heading line for an opening section tag. Text
// that shared the line with the tag follows the heading.
func SectionTitle(tag, rest string, restStyle lipgloss.Style, theme *styles.Theme) model.Line {
	line := model.Line{{Text: SectionTitleText(tag), Style: theme.SectionTitle}}
	if rest != "" {
		line = append(line, model.Span{Text: "  " + rest, Style: restStyle})
	}
	return line
}

// CheckpointBadge renders a full-width rule labelled with the checkpoint id.
func CheckpointBadge(id string, width int, theme *styles.Theme) model.Line {
	line := model.Line{
		{Text: "── ", Style: theme.CheckpointRule},
		{Text: "checkpoint", Style: theme.CheckpointLabel},
	}
	if id != "" {
		line = append(line, model.Span{Text: " " + util.SingleLine(id), Style: theme.CheckpointID})
	}
	line = append(line, model.Span{Text: " ", Style: theme.CheckpointRule})

	if fill := width - line.Width(); fill > 0 {
		line = append(line, model.Span{Text: strings.Repeat("─", fill), Style: theme.CheckpointRule})
	}
	return line
}

// AgentModeBadge renders the agent mode indicator line.
func AgentModeBadge(mode string, theme *styles.Theme) model.Line {
	if mode == "" {
		mode = "unknown"
	}
	return model.Line{
		{Text: "◆ ", Style: theme.ModeIcon},
		{Text: "mode: ", Style: theme.ModeLabel},
		{Text: util.SingleLine(mode), Style: theme.ModeValue},
	}
}
