// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides the small shared helpers used by rigrun-term.
//
// The most important piece is the width model: every layout computation in
// the UI measures text through RuneWidth or StringWidth, never through byte
// length or rune count, so wide glyphs (CJK, emoji) and zero-width marks land
// on the correct terminal cells.
//
// # Key Functions
//
// Width Model:
//   - RuneWidth: display width of one rune (0, 1 or 2 cells)
//   - StringWidth: sum of RuneWidth over a string
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with an ellipsis
//   - TruncateWidth: truncation to a display width
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	cells := util.StringWidth("日本語") // 6
//	preview := util.TruncateRunes(text, 30)
package util
