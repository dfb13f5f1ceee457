// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/util"
)

func rawLines(texts ...string) []model.Line {
	lines := make([]model.Line, len(texts))
	for i, text := range texts {
		lines[i] = model.NewLine(text, lipgloss.NewStyle())
	}
	return lines
}

func lineTexts(lines []model.Line) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text()
	}
	return out
}

func TestProcessTags(t *testing.T) {
	theme := styles.NewTheme()

	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "opening tag after text",
			raw:  []string{"Hello", "<planning>"},
			want: []string{"Hello", "", "Planning"},
		},
		{
			name: "opening tag on first line has no blank",
			raw:  []string{"<planning>", "step one"},
			want: []string{"Planning", "step one"},
		},
		{
			name: "closing tag with padding",
			raw:  []string{"  </planning>  "},
			want: []string{""},
		},
		{
			name: "multi word section name",
			raw:  []string{"x", "<local_context>"},
			want: []string{"x", "", "Local Context"},
		},
		{
			name: "text sharing the opening line",
			raw:  []string{"<notes>remember this</notes>"},
			want: []string{"Notes  remember this"},
		},
		{
			name: "spacing sentinel",
			raw:  []string{"a", "  SPACING_MARKER ", "b"},
			want: []string{"a", "", "b"},
		},
		{
			name: "unknown tag passes through",
			raw:  []string{"<thinking>", "</thinking>"},
			want: []string{"<thinking>", "</thinking>"},
		},
		{
			name: "closing tag with other text passes through",
			raw:  []string{"done </planning>"},
			want: []string{"done </planning>"},
		},
		{
			name: "plain lines unchanged",
			raw:  []string{"one", "", "  three  "},
			want: []string{"one", "", "  three  "},
		},
		{
			name: "agent mode",
			raw:  []string{"x", "<agent_mode>plan</agent_mode>"},
			want: []string{"x", "", "◆ mode: plan"},
		},
		{
			name: "agent mode without close takes rest of line",
			raw:  []string{"<agent_mode> build"},
			want: []string{"◆ mode: build"},
		},
		{
			name: "agent mode beats section tag",
			raw:  []string{"<agent_mode>x</agent_mode><planning>"},
			want: []string{"◆ mode: x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ProcessTags(rawLines(tt.raw...), 40, theme)
			assert.Equal(t, tt.want, lineTexts(result.Lines))
		})
	}
}

func TestProcessTagsCheckpoint(t *testing.T) {
	theme := styles.NewTheme()

	result := ProcessTags(rawLines("before", "<checkpoint_id>abc123</checkpoint_id>"), 30, theme)
	require.Len(t, result.Lines, 3)
	assert.Equal(t, "", result.Lines[1].Text())

	badge := result.Lines[2]
	assert.True(t, strings.HasPrefix(badge.Text(), "── checkpoint abc123 "))
	assert.Equal(t, 30, badge.Width())

	// Checkpoint wins over every other rule.
	result = ProcessTags(rawLines("<checkpoint_id>x</checkpoint_id> <agent_mode>y</agent_mode>"), 30, theme)
	require.Len(t, result.Lines, 1)
	assert.Contains(t, result.Lines[0].Text(), "checkpoint x")
}

func TestCheckpointBadgeNarrow(t *testing.T) {
	theme := styles.NewTheme()
	badge := CheckpointBadge("abcdef", 5, theme)
	// No fill when the label is wider than the frame; the row is truncated
	// at placement.
	assert.Equal(t, "── checkpoint abcdef ", badge.Text())
}

func TestProcessTagsOrigins(t *testing.T) {
	theme := styles.NewTheme()
	raw := rawLines("a", "<planning>", "b", "</planning>", "c")

	result := ProcessTags(raw, 40, theme)

	assert.Equal(t, []string{"a", "", "Planning", "b", "", "c"}, lineTexts(result.Lines))
	assert.Equal(t, []int{0, 1, 3, 4, 5}, result.Origins)
}

func TestProcessTagsKeepsStyles(t *testing.T) {
	theme := styles.NewTheme()
	style := lipgloss.NewStyle().Bold(true)
	raw := []model.Line{model.NewLine("styled", style)}

	result := ProcessTags(raw, 40, theme)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, raw[0], result.Lines[0])
}

func TestProcessTagsEmpty(t *testing.T) {
	result := ProcessTags(nil, 40, styles.NewTheme())
	assert.Empty(t, result.Lines)
	assert.Empty(t, result.Origins)
}

func TestSectionTitleText(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"planning", "Planning"},
		{"local_context", "Local Context"},
		{"application_analysis", "Application Analysis"},
		{"todo", "Todo"},
	}

	for _, tt := range tests {
		if got := SectionTitleText(tt.tag); got != tt.want {
			t.Errorf("SectionTitleText(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestAgentModeBadgeSingleLine(t *testing.T) {
	badge := AgentModeBadge("a\nb", styles.NewTheme())
	if strings.Contains(badge.Text(), "\n") {
		t.Errorf("badge contains a line break: %q", badge.Text())
	}
	if got := util.StringWidth(badge.Text()); got != badge.Width() {
		t.Errorf("Width() = %d, want %d", badge.Width(), got)
	}
}
