// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components renders the individual regions of the chat screen.

Every renderer returns []model.Line so the layout can measure, clip and
compose regions before anything is turned into a string. Renderers take a
*styles.Theme and a width; none of them keep state between frames.

# Regions

  - RenderInput (input.go): prompt, wrapped buffer and block cursor
  - RenderDropdown (dropdown.go): slash command helper list
  - RenderHint (hint.go): shortcut hint and expanded shortcut table
  - RenderConfirmation (confirm.go): approve or decline a command payload
  - RenderSessionPicker (session_picker.go): stored session list
  - RenderSelectionPopup (selection.go): preview of the copied text
  - SpinnerLine (spinner.go): loading indicator

# Message Tags

ProcessTags (tags.go) rewrites the structured markers in assistant replies
(planning and notes sections, agent mode and checkpoint badges) into styled
lines before the message is placed in the scroll view.

# Geometry

Box and Overlay draw bordered dialogs and paste them over the frame. Area
and SelectionSpans map mouse coordinates onto message rows.
*/
package components
