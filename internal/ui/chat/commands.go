// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-term/internal/backend"
	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/storage"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// commandHelp describes the built-in slash commands in display order.
var commandHelp = []struct {
	Name string
	Desc string
}{
	{"/sessions", "resume a stored session"},
	{"/new", "start a new session"},
	{"/shell", "toggle shell mode"},
	{"/clear", "clear the screen"},
	{"/help", "show this help"},
}

func isCommand(name string) bool {
	for _, c := range commandHelp {
		if c.Name == name {
			return true
		}
	}
	return false
}

// runCommand executes a slash command line.
func (m *Model) runCommand(line string) tea.Cmd {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "/sessions":
		if m.store == nil {
			m.notice("Session storage is disabled")
			return nil
		}
		return listSessionsCmd(m.store)

	case "/new":
		m.resetConversation()
		m.notice("Started a new session")

	case "/shell":
		m.state.ShellMode = !m.state.ShellMode
		if m.state.ShellMode {
			m.notice("Shell mode on: commands are confirmed before they run")
		} else {
			m.notice("Shell mode off")
		}

	case "/clear":
		m.resetConversation()

	case "/help":
		m.notice(m.helpText())

	default:
		m.notice("Unknown command: " + fields[0])
	}
	return nil
}

// resetConversation empties the screen and detaches from the stored
// session. The old session stays in storage.
func (m *Model) resetConversation() {
	m.cancelPending()
	m.state.Messages = nil
	m.state.Scroll = model.ScrollState{Pinned: true}
	m.state.Selection = nil
	m.newSession()
}

// helpText lists commands and key bindings.
func (m *Model) helpText() string {
	var b strings.Builder
	b.WriteString("Commands")
	for _, c := range commandHelp {
		b.WriteString("\n  " + util.PadWidth(c.Name, 12) + c.Desc)
	}
	b.WriteString("\nKeys")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("\n  " + util.PadWidth(h.Key, 16) + h.Desc)
		}
	}
	return b.String()
}

// shellPayload wraps a shell line in the tool call shape the confirmation
// dialog summarises.
func shellPayload(command string) string {
	data, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return ""
	}
	return string(data)
}

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// replyCmd asks the backend for a reply.
func replyCmd(ctx context.Context, b backend.Backend, prompt string, seq int) tea.Cmd {
	return func() tea.Msg {
		reply, err := b.Reply(ctx, prompt)
		return ReplyMsg{Seq: seq, Reply: reply, Err: err}
	}
}

// tickCmd schedules the next spinner frame.
func tickCmd(s spinner.Spinner) tea.Cmd {
	return tea.Tick(styles.SpinnerInterval(s), func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// saveCmd persists the plain messages of the conversation.
func (m *Model) saveCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	stored := storage.FromMessages(m.state.Messages)
	if len(stored) == 0 {
		return nil
	}
	store := m.store
	sess := &storage.StoredSession{
		ID:        m.sessionID,
		CreatedAt: m.sessionCreated,
		Messages:  stored,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		id, err := store.Save(ctx, sess)
		return SessionSavedMsg{ID: id, Err: err}
	}
}

func listSessionsCmd(store SessionStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		sessions, err := store.List(ctx)
		return SessionsListedMsg{Sessions: sessions, Err: err}
	}
}

func loadSessionCmd(store SessionStore, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		sess, err := store.Load(ctx, id)
		return SessionLoadedMsg{Session: sess, Err: err}
	}
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardMsg{Chars: utf8.RuneCountInString(text), Err: write(text)}
	}
}
