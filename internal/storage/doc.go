// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists chat sessions in a local SQLite database.
//
// Only plain text messages are stored; styled notices are rebuilt by the
// application. The database lives at ~/.rigrun-term/sessions.db unless the
// configuration points elsewhere.
package storage
