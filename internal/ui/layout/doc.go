// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout partitions the screen into regions and resolves the
// scroll offset of the message area.
//
// Everything here is pure arithmetic over the current state. Subtractions
// saturate at zero so undersized terminals still produce a valid frame.
package layout
