// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLineTextAndWidth(t *testing.T) {
	line := Line{
		{Text: "> ", Style: lipgloss.NewStyle()},
		{Text: "日本", Style: lipgloss.NewStyle().Bold(true)},
	}
	if got := line.Text(); got != "> 日本" {
		t.Errorf("Text() = %q, want %q", got, "> 日本")
	}
	if got := line.Width(); got != 6 {
		t.Errorf("Width() = %d, want 6", got)
	}
	if got := BlankLine().Width(); got != 0 {
		t.Errorf("BlankLine width = %d, want 0", got)
	}
}

func TestMessageConstructors(t *testing.T) {
	plain := NewPlain(RoleUser, "hi", lipgloss.NewStyle())
	if plain.Kind != KindPlain || plain.PlainText() != "hi" || plain.ID == "" {
		t.Errorf("unexpected plain message: %+v", plain)
	}

	styled := NewStyled(RoleSystem, NewLine("notice", lipgloss.NewStyle()))
	if styled.Kind != KindStyled || len(styled.Lines) != 1 {
		t.Errorf("styled message should hold one line, got %d", len(styled.Lines))
	}

	block := NewBlock(RoleSystem, []Line{NewLine("a", lipgloss.NewStyle()), NewLine("b", lipgloss.NewStyle())})
	if got := block.PlainText(); got != "a\nb" {
		t.Errorf("block PlainText() = %q, want %q", got, "a\nb")
	}
}

func TestDialogVariant(t *testing.T) {
	var d Dialog
	if d != nil {
		t.Fatal("zero dialog should be nil")
	}

	d = &Confirmation{Payload: "{}"}
	if _, ok := d.(*SessionPicker); ok {
		t.Error("confirmation must not also be a session picker")
	}
}

func TestClampIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{-1, 3, 0},
		{3, 3, 2},
		{1, 3, 1},
	}
	for _, tc := range tests {
		if got := ClampIndex(tc.i, tc.n); got != tc.want {
			t.Errorf("ClampIndex(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestHelperStateShowing(t *testing.T) {
	h := HelperState{Enabled: true, Filtered: []string{"/help"}}
	if !h.Showing("/he") {
		t.Error("dropdown should show for slash input with matches")
	}
	if h.Showing("he") {
		t.Error("dropdown should not show without a leading slash")
	}
	h.Filtered = nil
	if h.Showing("/zz") {
		t.Error("dropdown should not show with no matches")
	}
}

func TestLineFit(t *testing.T) {
	plain := lipgloss.NewStyle()
	tests := []struct {
		name  string
		line  Line
		width int
		want  string
	}{
		{"pads", NewLine("ab", plain), 5, "ab   "},
		{"exact", NewLine("abcde", plain), 5, "abcde"},
		{"cuts", Line{{Text: "abc"}, {Text: "def"}}, 4, "abcd"},
		{"drops straddling wide char", Line{{Text: "a"}, {Text: "日本"}, {Text: "z"}}, 4, "a日 "},
		{"zero width", NewLine("abc", plain), 0, ""},
		{"empty line", BlankLine(), 3, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.line.Fit(tt.width)
			if got.Text() != tt.want {
				t.Errorf("Fit(%d) = %q, want %q", tt.width, got.Text(), tt.want)
			}
			if tt.width > 0 && got.Width() != tt.width {
				t.Errorf("Fit(%d) width = %d", tt.width, got.Width())
			}
		})
	}
}
