// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-term/internal/backend"
	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/chat"
	"github.com/jeranaias/rigrun-term/internal/ui/render"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
)

// snapshotOptions selects what the demo screen shows.
type snapshotOptions struct {
	width     int
	height    int
	dialog    string
	input     string
	shell     bool
	masked    bool
	loading   bool
	shortcuts bool
	scroll    int
}

// Dialog names accepted by --dialog.
const (
	dialogNone     = "none"
	dialogConfirm  = "confirm"
	dialogSessions = "sessions"
)

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one rendered frame of a demo screen",
		Long: "Render a demo conversation with the current configuration and print the frame.\n" +
			"Width and height default to the terminal size, or 80x24 when stdout is not a terminal.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if opts.width <= 0 || opts.height <= 0 {
				w, h := GetTerminalSize()
				if opts.width <= 0 {
					opts.width = w
				}
				if opts.height <= 0 {
					opts.height = h
				}
			}

			now := time.Now()
			state, err := demoState(cmd.Context(), opts, now)
			if err != nil {
				return err
			}

			renderOpts := chat.RenderOptions(cfg, styles.NewTheme(), chat.DefaultKeyMap())
			renderOpts.Now = now
			frame := render.Render(state, renderOpts)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), frame.String())
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "Frame width in cells (default: terminal width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "Frame height in rows (default: terminal height)")
	cmd.Flags().StringVar(&opts.dialog, "dialog", dialogNone, "Dialog to open: none, confirm, sessions")
	cmd.Flags().StringVar(&opts.input, "input", "", "Text in the input box")
	cmd.Flags().BoolVar(&opts.shell, "shell", false, "Show shell mode")
	cmd.Flags().BoolVar(&opts.masked, "masked", false, "Mask the input")
	cmd.Flags().BoolVar(&opts.loading, "loading", false, "Show the loading spinner")
	cmd.Flags().BoolVar(&opts.shortcuts, "shortcuts", false, "Expand the shortcut list")
	cmd.Flags().IntVar(&opts.scroll, "scroll", -1, "Scroll offset in lines (-1: newest)")
	return cmd
}

// demoState builds the state of the demo screen. The assistant message is
// produced by the demo backend so it carries real section markers.
func demoState(ctx context.Context, opts *snapshotOptions, now time.Time) (*model.AppState, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	theme := styles.NewTheme()

	prompt := "Plan the release notes"
	reply, err := backend.NewDemo(0).Reply(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("demo reply: %w", err)
	}

	state := &model.AppState{
		Width:  opts.width,
		Height: opts.height,
		Messages: []model.Message{
			model.NewBlock(model.RoleSystem, []model.Line{
				model.NewLine("rigrun-term "+Version, theme.SystemMessage),
			}),
			model.NewPlain(model.RoleUser, prompt, theme.UserMessage),
			model.NewPlain(model.RoleAssistant, reply.Text, theme.AssistantMessage),
		},
		Loading:       opts.loading,
		Input:         opts.input,
		Cursor:        len(opts.input),
		Masked:        opts.masked,
		ShellMode:     opts.shell,
		ShowShortcuts: opts.shortcuts,
		Scroll:        model.ScrollState{Pinned: true},
	}
	if opts.scroll >= 0 {
		state.Scroll = model.ScrollState{Offset: opts.scroll}
	}

	switch opts.dialog {
	case "", dialogNone:
	case dialogConfirm:
		call, err := backend.ToolCall("shell", "make test")
		if err != nil {
			return nil, err
		}
		state.Dialog = &model.Confirmation{Payload: call}
	case dialogSessions:
		state.Dialog = &model.SessionPicker{Sessions: []model.SessionSummary{
			{ID: "1", Title: "Plan the release notes", UpdatedAt: now.Add(-2 * time.Minute), MessageCount: 2},
			{ID: "2", Title: "Debug the flaky test", UpdatedAt: now.Add(-3 * time.Hour), MessageCount: 14},
			{ID: "3", Title: "Untitled session", UpdatedAt: now.Add(-50 * time.Hour), MessageCount: 1},
		}}
	default:
		return nil, fmt.Errorf("unknown dialog %q (want none, confirm or sessions)", opts.dialog)
	}
	return state, nil
}
