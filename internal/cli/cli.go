// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-term/internal/config"
	"github.com/jeranaias/rigrun-term/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = ""
	BuildDate = ""
)

type rootOptions struct {
	configPath string
	dbPath     string
	debug      bool
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var plain bool

	cmd := &cobra.Command{
		Use:           "rigrun-term",
		Short:         "Chat in a terminal UI",
		SilenceErrors: false,
		SilenceUsage:  true,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if plain || !IsTTY() || !IsStdoutTTY() {
				return runPlain(cmd, opts)
			}
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Override config file path (default: ~/.rigrun-term/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Override session database path")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Write debug logs to the config directory")
	cmd.Flags().BoolVar(&plain, "plain", false, "Use the line-oriented REPL instead of the full-screen UI")

	cmd.AddCommand(
		newSnapshotCmd(opts),
		newSessionsCmd(opts),
	)

	return cmd
}

func buildVersion() string {
	v := Version
	if GitCommit != "" {
		v += " (" + GitCommit + ")"
	}
	if BuildDate != "" {
		v += " " + BuildDate
	}
	return v
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig resolves the configuration for this invocation and installs it
// as the global config.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Storage.Path = opts.dbPath
		cfg.Storage.Enabled = true
	}
	config.SetGlobal(cfg)
	return cfg, nil
}

// configPath returns the file the watcher should follow.
func configPath(opts *rootOptions) (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return config.ConfigPath()
}

// openStore opens the session database, or returns nil when storage is
// disabled.
func openStore(cfg *config.Config) (*storage.SessionStore, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

// setupLogging sends the standard logger to the configured log file. The
// terminal belongs to the UI, so without a file logs are discarded.
func setupLogging(cfg *config.Config, debug bool) (func(), error) {
	path := cfg.UI.LogFile
	if path == "" && debug {
		if err := config.EnsureConfigDir(); err != nil {
			return nil, err
		}
		dir, err := config.ConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "debug.log")
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(path, "rigrun-term")
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return func() { _ = f.Close() }, nil
}
