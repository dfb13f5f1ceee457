// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for
// rigrun-term.
//
// # Key Types
//
//   - Config: main configuration structure
//   - UIConfig: prompt, mask glyph, spinner, scroll remap, dropdown size
//   - StorageConfig: session database location
//   - CommandsConfig: slash commands offered in the helper dropdown
//   - Watcher: reloads the file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (RIGRUN_TERM_*)
//   - ~/.rigrun-term/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	prompt := cfg.UI.Prompt
//	db := cfg.Storage.Path
package config
