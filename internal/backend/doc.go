// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend produces assistant replies for the chat UI.
//
// The UI only depends on the Backend interface. Demo is a scripted
// implementation that answers every prompt with a structured reply using the
// inline section markers understood by the renderer:
//
//	<agent_mode>chat</agent_mode>
//	<planning>
//	...
//	</planning>
//	<checkpoint_id>1a2b3c4d</checkpoint_id>
//
// Prompts starting with "run " produce a tool call that the UI turns into a
// confirmation dialog; prompts mentioning a password or token ask for secret
// input.
package backend
