// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea application that drives the chat
// screen.
//
// The Model owns the application state, feeds keyboard and mouse events into
// it, talks to the backend and the session store through tea.Cmd values, and
// paints every frame with render.Render. It never draws anything itself.
//
// # Slash Commands
//
//   - /sessions: pick a stored session to resume
//   - /new: start a new session
//   - /shell: toggle shell mode (input becomes a command to confirm)
//   - /clear: clear the screen
//   - /help: list commands and key bindings
package chat
