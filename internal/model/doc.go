// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared between the application
// loop and the render core.
//
// # Key Types
//
//   - Message: immutable chat entry in one of three shapes (plain, styled, block)
//   - Line, Span: one terminal row of styled text runs
//   - AppState: per-frame snapshot handed to the renderer
//   - Dialog: tagged variant of the modal overlays (nil, *Confirmation, *SessionPicker)
//   - Selection: drag selection corners and captured text
//   - SessionSummary: listing entry for the session picker
//
// # Usage
//
//	state := &model.AppState{Width: 80, Height: 24}
//	state.Messages = append(state.Messages,
//	    model.NewPlain(model.RoleUser, "hello", lipgloss.NewStyle()))
//	state.Dialog = &model.Confirmation{Payload: `{"command":"ls"}`}
package model
