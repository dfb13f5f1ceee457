// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	rendered := []string{
		theme.SectionTitle.Render("Planning"),
		theme.Cursor.Render(" "),
		theme.ConfirmBox.Render("Run command"),
		theme.PopupBox.Render("Selection"),
	}
	for i, s := range rendered {
		if s == "" {
			t.Errorf("style %d rendered an empty string", i)
		}
	}
}

func TestBoxStylesHaveBorders(t *testing.T) {
	theme := NewTheme()

	for name, box := range map[string]string{
		"input":   theme.InputBorder.Render("x"),
		"confirm": theme.ConfirmBox.Render("x"),
		"session": theme.SessionBox.Render("x"),
		"popup":   theme.PopupBox.Render("x"),
	} {
		if lines := strings.Split(box, "\n"); len(lines) != 3 {
			t.Errorf("%s box should be 3 rows tall, got %d", name, len(lines))
		}
	}
}

func TestSpinnerFor(t *testing.T) {
	if got := SpinnerFor("line"); len(got.Frames) != 4 {
		t.Errorf("line spinner should have 4 frames, got %d", len(got.Frames))
	}
	if got := SpinnerFor("does-not-exist"); len(got.Frames) == 0 {
		t.Error("unknown spinner should fall back to the default")
	}
}

func TestSpinnerFrame(t *testing.T) {
	s := SpinnerFor("line")
	if SpinnerFrame(s, 0) != s.Frames[0] {
		t.Error("phase 0 should select the first frame")
	}
	if SpinnerFrame(s, len(s.Frames)+1) != s.Frames[1] {
		t.Error("phase should wrap around the frame list")
	}
	if SpinnerFrame(s, -5) != s.Frames[0] {
		t.Error("negative phase should clamp to the first frame")
	}
}

func TestSpinnerInterval(t *testing.T) {
	s := SpinnerFor("dot")
	if SpinnerInterval(s) < time.Second/60 {
		t.Error("interval should never be shorter than 1/60s")
	}
}
