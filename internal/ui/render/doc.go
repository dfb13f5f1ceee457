// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns an application state snapshot into one terminal
// frame.
//
// Render is a pure function: the line sequences, layout and scroll
// geometry are rebuilt from the state on every call and nothing is cached
// between frames. The geometry it reports back (scroll position, message
// area, cursor cell) is what the application loop needs to interpret the
// next input event.
package render
