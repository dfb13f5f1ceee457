// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-term/internal/backend"
	"github.com/jeranaias/rigrun-term/internal/config"
	"github.com/jeranaias/rigrun-term/internal/ui/chat"
)

// runTUI starts the full-screen chat.
func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Printf("STARTUP | version=%s storage=%t", Version, cfg.Storage.Enabled)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	chatOpts := chat.Options{
		Config:  cfg,
		Backend: backend.NewDemo(time.Duration(cfg.Backend.ReplyDelayMS) * time.Millisecond),
	}
	// A nil *SessionStore must not become a non-nil interface.
	if store != nil {
		defer store.Close()
		chatOpts.Store = store
	}

	programOpts := []tea.ProgramOption{
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(chat.New(chatOpts), programOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if path, err := configPath(opts); err == nil {
		watcher, err := config.Watch(ctx, path, func(cfg *config.Config, err error) {
			p.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			// The config directory may not exist yet; hot reload is optional.
			log.Printf("CONFIG_WATCH_DISABLED | path=%s error=%v", path, err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
