// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the rigrun-term command line.
//
// # Commands
//
//   - rigrun-term: full-screen chat (falls back to a line REPL when stdin
//     or stdout is not a terminal, or with --plain)
//   - rigrun-term snapshot: print one rendered frame of a demo screen
//   - rigrun-term sessions list|show|delete: inspect stored sessions
//
// # Global Flags
//
//	--config PATH   config file (default ~/.rigrun-term/config.toml)
//	--db PATH       session database (overrides storage.path)
//	--debug         write debug logs to ~/.rigrun-term/debug.log
package cli
