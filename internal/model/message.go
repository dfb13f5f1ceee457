// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// MessageKind selects how a message is turned into display lines.
type MessageKind int

const (
	// KindPlain is raw text wrapped at render time with a single style.
	KindPlain MessageKind = iota
	// KindStyled is one pre-built line that is never re-wrapped.
	KindStyled
	// KindBlock is a fixed sequence of pre-built lines, e.g. system notices.
	KindBlock
)

// Message is a chat entry. Messages are immutable once appended to the
// state; the renderer only reads them.
type Message struct {
	ID        string
	Role      Role
	Kind      MessageKind
	Timestamp time.Time

	// KindPlain
	Text  string
	Style lipgloss.Style

	// KindStyled (exactly one line) and KindBlock
	Lines []Line
}

// NewPlain creates a plain text message.
func NewPlain(role Role, text string, style lipgloss.Style) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Kind:      KindPlain,
		Timestamp: time.Now(),
		Text:      text,
		Style:     style,
	}
}

// NewStyled creates a message holding one pre-built line.
func NewStyled(role Role, line Line) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Kind:      KindStyled,
		Timestamp: time.Now(),
		Lines:     []Line{line},
	}
}

// NewBlock creates a message holding a fixed block of pre-built lines.
func NewBlock(role Role, lines []Line) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Kind:      KindBlock,
		Timestamp: time.Now(),
		Lines:     lines,
	}
}

// PlainText returns the message content without styling. Block messages are
// joined with newlines.
func (m Message) PlainText() string {
	if m.Kind == KindPlain {
		return m.Text
	}
	text := ""
	for i, line := range m.Lines {
		if i > 0 {
			text += "\n"
		}
		text += line.Text()
	}
	return text
}
