// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/util"
)

var testTheme = styles.NewTheme()

func plain(role model.Role, text string) model.Message {
	return model.NewPlain(role, text, lipgloss.NewStyle())
}

func testState(width, height int) *model.AppState {
	return &model.AppState{
		Width:  width,
		Height: height,
		Scroll: model.ScrollState{Pinned: true},
	}
}

func stripped(f Frame) []string {
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = ansi.Strip(row)
	}
	return out
}

func assertFrameShape(t *testing.T, f Frame) {
	t.Helper()
	require.Len(t, f.Rows, f.Height)
	for i, row := range stripped(f) {
		assert.Equal(t, f.Width, util.StringWidth(row), "row %d: %q", i, row)
	}
	assert.Equal(t, f.Height, f.Regions.Total())
}

func TestRenderIdle(t *testing.T) {
	state := testState(40, 12)
	state.Messages = []model.Message{plain(model.RoleUser, "hello")}
	state.Input = "hi"
	state.Cursor = 2

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)
	rows := stripped(f)

	assert.Equal(t, "hello", strings.TrimRight(rows[0], " "))
	assert.Equal(t, 7, f.Regions.Messages.Height)
	assert.True(t, strings.HasPrefix(rows[7], "╭"))
	assert.Equal(t, "│ > hi ", rows[8][:len("│ > hi ")])
	assert.True(t, strings.HasPrefix(rows[9], "╰"))
	assert.Contains(t, rows[10], "? for shortcuts")

	require.True(t, f.CursorVisible)
	assert.Equal(t, model.Point{X: 6, Y: 8}, f.Cursor)
}

func TestRenderStructuredMessage(t *testing.T) {
	state := testState(40, 16)
	state.Messages = []model.Message{
		plain(model.RoleAssistant, "Intro\n<planning>\nstep one\n</planning>\ndone"),
	}

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)
	rows := stripped(f)

	want := []string{"Intro", "", "Planning", "step one", "", "done"}
	for i, line := range want {
		assert.Equal(t, line, strings.TrimRight(rows[i], " "), "row %d", i)
	}
	assert.Equal(t, 5, f.RawLen)
	assert.Equal(t, 6, f.ProcessedLen)
}

func TestRenderPinnedShowsNewest(t *testing.T) {
	state := testState(30, 10)
	for i := 0; i < 20; i++ {
		state.Messages = append(state.Messages, plain(model.RoleUser, "message"))
	}
	state.Messages = append(state.Messages, plain(model.RoleUser, "newest"))

	f := Render(state, Options{Theme: testTheme})
	rows := stripped(f)
	last := rows[f.Regions.Messages.Height-1]
	assert.Equal(t, "newest", strings.TrimRight(last, " "))
	assert.Equal(t, f.Scroll.MaxScroll, f.Scroll.Offset)
}

func TestRenderScrolledToTop(t *testing.T) {
	state := testState(30, 10)
	state.Messages = []model.Message{plain(model.RoleUser, "first")}
	for i := 0; i < 20; i++ {
		state.Messages = append(state.Messages, plain(model.RoleUser, "more"))
	}
	state.Scroll = model.ScrollState{Offset: 0}

	f := Render(state, Options{Theme: testTheme})
	assert.Equal(t, "first", strings.TrimRight(stripped(f)[0], " "))
	assert.Equal(t, 0, f.Scroll.Offset)
}

func TestRenderConfirmationHidesInput(t *testing.T) {
	state := testState(50, 20)
	state.Input = "typed"
	state.Helpers = model.HelperState{Enabled: true, Filtered: []string{"/x"}}
	state.Dialog = &model.Confirmation{Payload: `{"command": "make"}`}

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)

	assert.Equal(t, 6, f.Regions.Dialog.Height)
	assert.Equal(t, 1, f.Regions.DialogMargin.Height)
	assert.Zero(t, f.Regions.Input.Height)
	assert.Zero(t, f.Regions.Dropdown.Height)
	assert.Zero(t, f.Regions.Hint.Height)
	assert.False(t, f.CursorVisible)

	joined := strings.Join(stripped(f), "\n")
	assert.Contains(t, joined, "Run command: make")
	assert.NotContains(t, joined, "typed")
}

func TestRenderSessionPicker(t *testing.T) {
	state := testState(50, 30)
	state.Dialog = &model.SessionPicker{Sessions: []model.SessionSummary{{Title: "one"}, {Title: "two"}}}

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)
	assert.Equal(t, 11, f.Regions.Dialog.Height)
	assert.Contains(t, strings.Join(stripped(f), "\n"), "Sessions")
}

func TestRenderTypedNilDialog(t *testing.T) {
	state := testState(30, 10)
	var c *model.Confirmation
	state.Dialog = c

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)
	assert.Zero(t, f.Regions.Dialog.Height)
	assert.Positive(t, f.Regions.Input.Height)
}

func TestRenderDropdownAndShortcuts(t *testing.T) {
	state := testState(40, 20)
	state.Input = "/s"
	state.Cursor = 2
	state.Helpers = model.HelperState{
		Enabled:  true,
		Commands: []string{"/sessions", "/shell", "/new"},
		Filtered: []string{"/sessions", "/shell"},
	}

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)
	assert.Equal(t, 2, f.Regions.Dropdown.Height)
	assert.Zero(t, f.Regions.Hint.Height)

	state.Input = ""
	state.ShowShortcuts = true
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "shortcuts")),
	}
	f = Render(state, Options{Theme: testTheme, Shortcuts: bindings})
	assertFrameShape(t, f)
	assert.Equal(t, 3, f.Regions.Hint.Height)
	assert.Contains(t, stripped(f)[f.Regions.Hint.Y+1], "dismiss")
}

func TestRenderLoadingSpinner(t *testing.T) {
	state := testState(30, 10)
	state.Messages = []model.Message{plain(model.RoleUser, "question")}
	state.Loading = true

	f := Render(state, Options{Theme: testTheme, SpinnerLabel: "Working"})
	rows := stripped(f)
	assert.Contains(t, rows[1], "Working")
	assert.Equal(t, 2, f.RawLen)
}

func TestRenderShellModeMasked(t *testing.T) {
	state := testState(30, 10)
	state.ShellMode = true
	state.Masked = true
	state.Input = "secret"
	state.Cursor = 6

	f := Render(state, Options{Theme: testTheme})
	joined := strings.Join(stripped(f), "\n")
	assert.Contains(t, joined, " $ ******")
	assert.NotContains(t, joined, "secret")
}

func TestRenderSelection(t *testing.T) {
	state := testState(40, 12)
	state.Messages = []model.Message{plain(model.RoleUser, "select this text")}
	state.Selection = &model.Selection{
		Start: model.Point{X: 7, Y: 0},
		End:   model.Point{X: 10, Y: 0},
		Text:  "this",
	}

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)
	assert.Equal(t, "select this text", strings.TrimRight(ansi.Strip(f.MessageRows[0]), " "))
	assert.Contains(t, strings.Join(stripped(f), "\n"), "c copy · esc dismiss")
}

func TestRenderDegenerateSizes(t *testing.T) {
	sizes := [][2]int{{0, 0}, {0, 5}, {5, 0}, {1, 1}, {3, 2}, {4, 4}, {10, 3}, {-3, -3}}
	for _, size := range sizes {
		state := testState(size[0], size[1])
		state.Messages = []model.Message{plain(model.RoleAssistant, "<checkpoint_id>abc</checkpoint_id>\nsome words here")}
		state.Input = "typing a long input line"
		state.Cursor = 99
		state.Loading = true
		state.Selection = &model.Selection{Start: model.Point{X: -4, Y: -2}, End: model.Point{X: 40, Y: 40}, Text: "x"}

		f := Render(state, Options{Theme: testTheme})
		assert.Len(t, f.Rows, max(size[1], 0), "size %v", size)

		state.Dialog = &model.Confirmation{Payload: "not json", Selected: 9}
		f = Render(state, Options{Theme: testTheme})
		assert.Len(t, f.Rows, max(size[1], 0), "size %v with dialog", size)
		assert.False(t, f.Regions.Dialog.Height > 0 && f.Regions.Input.Height > 0)
	}
}

func TestRawLines(t *testing.T) {
	styled := model.NewStyled(model.RoleSystem, model.NewLine("styled", lipgloss.NewStyle()))
	block := model.NewBlock(model.RoleSystem, []model.Line{
		model.NewLine("b1", lipgloss.NewStyle()),
		model.NewLine("b2", lipgloss.NewStyle()),
	})

	lines := RawLines([]model.Message{plain(model.RoleUser, "aaa bbb"), styled, block}, 4)

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text()
	}
	assert.Equal(t, []string{"aaa ", "bbb", "", "styled", "", "b1", "b2"}, texts)
}

func TestRenderInputCursorAtEdge(t *testing.T) {
	full := strings.Repeat("a", 34)
	long := strings.Repeat("b", 60)
	spaced := full + "      "

	tests := []struct {
		name   string
		input  string
		cursor int
		want   model.Point
	}{
		// Inner width is 36; the prompt takes two cells of the first row.
		{"end of a full line", full, 34, model.Point{X: 2, Y: 9}},
		{"end of a long word", long, 60, model.Point{X: 28, Y: 9}},
		{"inside a long word", long, 50, model.Point{X: 18, Y: 9}},
		{"whitespace past the edge", spaced, 37, model.Point{X: 2, Y: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := testState(40, 13)
			state.Input = tt.input
			state.Cursor = tt.cursor

			f := Render(state, Options{Theme: testTheme})
			assertFrameShape(t, f)
			require.True(t, f.CursorVisible)
			assert.Equal(t, 7, f.Regions.Input.Y)
			assert.Equal(t, 4, f.Regions.Input.Height)
			assert.Equal(t, tt.want, f.Cursor)
			assert.Less(t, f.Cursor.X, 38, "cursor must sit inside the border")
		})
	}
}

func TestRenderLongWordKeepsEveryCharacter(t *testing.T) {
	url := "https://example.com/a/very/long/path"
	state := testState(12, 12)
	state.Messages = []model.Message{plain(model.RoleAssistant, "see "+url+" ok")}

	f := Render(state, Options{Theme: testTheme})
	assertFrameShape(t, f)

	var joined strings.Builder
	for _, row := range f.MessageRows {
		joined.WriteString(strings.TrimRight(ansi.Strip(row), " "))
	}
	assert.Equal(t, "see"+url+"ok", joined.String())
}
