// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/rigrun-term/internal/backend"
	"github.com/jeranaias/rigrun-term/internal/config"
	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/storage"
)

// =============================================================================
// BACKEND MESSAGES
// =============================================================================

// ReplyMsg delivers a backend reply. Seq identifies the request so replies
// for an abandoned conversation are dropped.
type ReplyMsg struct {
	Seq   int
	Reply backend.Reply
	Err   error
}

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// SessionSavedMsg reports the outcome of a background save.
type SessionSavedMsg struct {
	ID  string
	Err error
}

// SessionsListedMsg carries the stored sessions for the picker.
type SessionsListedMsg struct {
	Sessions []model.SessionSummary
	Err      error
}

// SessionLoadedMsg carries a session picked from the list.
type SessionLoadedMsg struct {
	Session *storage.StoredSession
	Err     error
}

// =============================================================================
// UI MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent by the config watcher after the file changed.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// ClipboardMsg reports the outcome of copying the captured selection.
type ClipboardMsg struct {
	Chars int
	Err   error
}

// spinnerTickMsg advances the loading animation.
type spinnerTickMsg struct{}
