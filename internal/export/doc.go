// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders stored sessions as Markdown or JSON documents.
//
// # Key Types
//
//   - Exporter: converts a storage.StoredSession to bytes
//   - Options: metadata and timestamp toggles
//
// # Usage
//
//	exp, err := export.ForFormat("md", export.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	path, err := export.ToFile(sess, exp, dir)
package export
