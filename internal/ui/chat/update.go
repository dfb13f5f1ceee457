// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/ui/components"
)

// scrollLines is how far ctrl+up/down moves.
const scrollLines = 1

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case spinnerTickMsg:
		cmd = m.handleTick()

	case ReplyMsg:
		cmd = m.handleReply(msg)

	case SessionSavedMsg:
		if msg.Err != nil {
			log.Printf("SESSION_SAVE_FAILED | id=%s error=%v", msg.ID, msg.Err)
			m.notice("Could not save session: " + msg.Err.Error())
		}

	case SessionsListedMsg:
		if msg.Err != nil {
			log.Printf("SESSION_LIST_FAILED | error=%v", msg.Err)
			m.notice("Could not list sessions: " + msg.Err.Error())
			break
		}
		m.state.ShowShortcuts = false
		m.state.Dialog = &model.SessionPicker{Sessions: msg.Sessions}

	case SessionLoadedMsg:
		m.handleSessionLoaded(msg)

	case ConfigReloadedMsg:
		if msg.Err != nil {
			m.notice("Config reload failed: " + msg.Err.Error())
			break
		}
		m.applyConfig(msg.Config)

	case ClipboardMsg:
		if msg.Err != nil {
			log.Printf("CLIPBOARD_FAILED | error=%v", msg.Err)
			m.notice("Copy failed: " + msg.Err.Error())
		} else {
			m.notice(fmt.Sprintf("Copied %d characters", msg.Chars))
		}
	}

	if !m.quitting {
		m.refresh()
	}
	return m, cmd
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	switch d := m.state.Dialog.(type) {
	case *model.Confirmation:
		return m.handleConfirmKey(d, msg)
	case *model.SessionPicker:
		return m.handlePickerKey(d, msg)
	}

	// A finished selection only reacts to copy and dismiss; any other key
	// drops it and is handled normally.
	if sel := m.state.Selection; sel != nil && !sel.InProgress {
		m.state.Selection = nil
		switch {
		case key.Matches(msg, m.keys.Copy) && sel.Text != "":
			return copyCmd(m.clipboard, sel.Text)
		case key.Matches(msg, m.keys.Dismiss):
			return nil
		}
	}

	defer m.syncInput()

	if key.Matches(msg, m.keys.Dismiss) {
		return m.dismiss()
	}
	if key.Matches(msg, m.keys.Help) && m.buffer.Empty() {
		m.state.ShowShortcuts = !m.state.ShowShortcuts
		return nil
	}

	if h := &m.state.Helpers; h.Showing(m.state.Input) {
		n := len(h.Filtered)
		switch {
		case key.Matches(msg, m.keys.Up):
			h.Selected = (h.Selected - 1 + n) % n
			return nil
		case key.Matches(msg, m.keys.Down):
			h.Selected = (h.Selected + 1) % n
			return nil
		case key.Matches(msg, m.keys.Complete):
			m.buffer.SetText(h.Filtered[h.Selected])
			m.buffer.SetCursor(m.buffer.Len())
			return nil
		case key.Matches(msg, m.keys.Submit):
			command := h.Filtered[h.Selected]
			m.buffer.Reset()
			return m.runCommand(command)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Newline):
		m.buffer.Insert("\n")
	case key.Matches(msg, m.keys.Left):
		m.buffer.Left()
	case key.Matches(msg, m.keys.Right):
		m.buffer.Right()
	case key.Matches(msg, m.keys.WordLeft):
		m.buffer.WordLeft()
	case key.Matches(msg, m.keys.WordRight):
		m.buffer.WordRight()
	case key.Matches(msg, m.keys.LineStart):
		m.buffer.Home()
	case key.Matches(msg, m.keys.LineEnd):
		m.buffer.End()
	case key.Matches(msg, m.keys.Backspace):
		m.buffer.Backspace()
	case key.Matches(msg, m.keys.Delete):
		m.buffer.Delete()
	case key.Matches(msg, m.keys.DeleteWord):
		m.buffer.DeleteWordBackward()
	case key.Matches(msg, m.keys.KillLine):
		m.buffer.KillLine()
	case key.Matches(msg, m.keys.Up):
		if !m.buffer.Up() {
			m.state.Scroll = m.frame.Scroll.Up(m.state.Scroll, scrollLines)
		}
	case key.Matches(msg, m.keys.Down):
		if !m.buffer.Down() {
			m.state.Scroll = m.frame.Scroll.Down(m.state.Scroll, scrollLines)
		}
	case key.Matches(msg, m.keys.ScrollUp):
		m.state.Scroll = m.frame.Scroll.Up(m.state.Scroll, scrollLines)
	case key.Matches(msg, m.keys.ScrollDown):
		m.state.Scroll = m.frame.Scroll.Down(m.state.Scroll, scrollLines)
	case key.Matches(msg, m.keys.PageUp):
		m.state.Scroll = m.frame.Scroll.PageUp(m.state.Scroll)
	case key.Matches(msg, m.keys.PageDown):
		m.state.Scroll = m.frame.Scroll.PageDown(m.state.Scroll)
	case key.Matches(msg, m.keys.Top):
		m.state.Scroll = m.frame.Scroll.Top()
	case key.Matches(msg, m.keys.Bottom):
		m.state.Scroll = m.frame.Scroll.Bottom()
	case msg.Type == tea.KeySpace:
		m.buffer.InsertRune(' ')
	case msg.Type == tea.KeyRunes:
		m.buffer.Insert(string(msg.Runes))
	}
	return nil
}

// dismiss handles esc outside dialogs, closing the innermost thing open.
func (m *Model) dismiss() tea.Cmd {
	switch {
	case m.state.ShowShortcuts:
		m.state.ShowShortcuts = false
	case m.state.Masked:
		m.state.Masked = false
		m.buffer.Reset()
		m.notice("Secret entry cancelled")
	case m.state.Loading:
		m.cancelPending()
		m.notice("Request cancelled")
	case m.state.Helpers.Showing(m.state.Input):
		m.buffer.Reset()
	}
	return nil
}

func (m *Model) handleConfirmKey(c *model.Confirmation, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.Complete):
		c.Selected = (c.Selected + 1) % model.ChoiceCount
	case msg.String() == "y":
		m.resolveConfirmation(c, model.ChoiceYes)
	case msg.String() == "n":
		m.resolveConfirmation(c, model.ChoiceNo)
	case key.Matches(msg, m.keys.Submit):
		m.resolveConfirmation(c, c.Selected)
	case key.Matches(msg, m.keys.Dismiss):
		m.resolveConfirmation(c, model.ChoiceNo)
	}
	return nil
}

// resolveConfirmation closes the dialog and records the decision. Commands
// are never executed here.
func (m *Model) resolveConfirmation(c *model.Confirmation, choice int) {
	m.state.Dialog = nil
	summary := components.CommandSummary(c.Payload)
	if choice == model.ChoiceYes {
		log.Printf("CONFIRM | choice=yes command=%q", summary)
		m.notice("Approved: " + summary)
		return
	}
	log.Printf("CONFIRM | choice=no command=%q", summary)
	m.notice("Declined: " + summary)
}

func (m *Model) handlePickerKey(p *model.SessionPicker, msg tea.KeyMsg) tea.Cmd {
	n := len(p.Sessions)
	switch {
	case key.Matches(msg, m.keys.Up):
		p.Selected = model.ClampIndex(p.Selected-1, n)
	case key.Matches(msg, m.keys.Down):
		p.Selected = model.ClampIndex(p.Selected+1, n)
	case key.Matches(msg, m.keys.Submit):
		m.state.Dialog = nil
		if n == 0 || m.store == nil {
			return nil
		}
		return loadSessionCmd(m.store, p.Sessions[model.ClampIndex(p.Selected, n)].ID)
	case key.Matches(msg, m.keys.Dismiss):
		m.state.Dialog = nil
	}
	return nil
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submit consumes the input buffer.
func (m *Model) submit() tea.Cmd {
	text := m.buffer.Text()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m.buffer.Reset()
	m.state.ShowShortcuts = false

	if m.state.Masked {
		m.state.Masked = false
		chars := utf8.RuneCountInString(text)
		log.Printf("SECRET_RECEIVED | chars=%d", chars)
		m.notice(fmt.Sprintf("Secret received (%d characters)", chars))
		return nil
	}

	if strings.HasPrefix(text, "/") {
		if name := strings.Fields(text)[0]; isCommand(name) || !m.state.ShellMode {
			return m.runCommand(text)
		}
	}

	if m.state.ShellMode {
		m.openConfirmation(shellPayload(text))
		return nil
	}
	return m.send(text)
}

// send appends the user message and asks the backend for a reply.
func (m *Model) send(text string) tea.Cmd {
	m.appendMessage(model.NewPlain(model.RoleUser, text, m.theme.UserMessage))
	m.state.Scroll = model.ScrollState{Pinned: true}

	m.cancelPending()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelReply = cancel
	m.replySeq++
	m.state.Loading = true
	m.state.SpinnerPhase = 0

	log.Printf("CHAT_SUBMIT | seq=%d chars=%d", m.replySeq, utf8.RuneCountInString(text))
	return tea.Batch(
		replyCmd(ctx, m.backend, text, m.replySeq),
		m.startTicking(),
		m.saveCmd(),
	)
}

// cancelPending aborts the request in flight, if any, and stops loading.
func (m *Model) cancelPending() {
	if m.cancelReply != nil {
		m.cancelReply()
		m.cancelReply = nil
	}
	if m.state.Loading {
		m.replySeq++
		m.state.Loading = false
	}
}

func (m *Model) handleReply(msg ReplyMsg) tea.Cmd {
	if msg.Seq != m.replySeq {
		return nil
	}
	if m.cancelReply != nil {
		m.cancelReply()
		m.cancelReply = nil
	}
	m.state.Loading = false

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return nil
		}
		log.Printf("BACKEND_ERROR | seq=%d error=%v", msg.Seq, msg.Err)
		m.notice("Backend error: " + msg.Err.Error())
		return nil
	}

	log.Printf("BACKEND_REPLY | seq=%d checkpoint=%s tool_call=%t", msg.Seq, msg.Reply.Checkpoint, msg.Reply.ToolCall != "")
	m.appendMessage(model.NewPlain(model.RoleAssistant, msg.Reply.Text, m.theme.AssistantMessage))
	if msg.Reply.WantSecret {
		m.state.Masked = true
		m.syncInput()
	}
	if msg.Reply.ToolCall != "" {
		m.openConfirmation(msg.Reply.ToolCall)
	}
	return m.saveCmd()
}

// openConfirmation shows the confirmation dialog with Yes preselected.
func (m *Model) openConfirmation(payload string) {
	m.state.ShowShortcuts = false
	m.state.Selection = nil
	m.state.Dialog = &model.Confirmation{Payload: payload, Selected: model.ChoiceYes}
}

func (m *Model) handleSessionLoaded(msg SessionLoadedMsg) {
	if msg.Err != nil {
		log.Printf("SESSION_LOAD_FAILED | error=%v", msg.Err)
		m.notice("Could not load session: " + msg.Err.Error())
		return
	}
	m.cancelPending()
	sess := msg.Session
	m.state.Messages = m.messagesFromStored(sess.Messages)
	m.state.Scroll = model.ScrollState{Pinned: true}
	m.state.Selection = nil
	m.sessionID = sess.ID
	m.sessionCreated = sess.CreatedAt
	log.Printf("SESSION_LOADED | id=%s messages=%d", sess.ID, len(sess.Messages))
}

// handleTick advances the spinner while loading.
func (m *Model) handleTick() tea.Cmd {
	if !m.state.Loading {
		m.ticking = false
		return nil
	}
	m.state.SpinnerPhase++
	return tickCmd(m.opts.Spinner)
}

// startTicking starts the spinner loop unless it is already running.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tickCmd(m.opts.Spinner)
}

func (m *Model) quit() tea.Cmd {
	m.cancelPending()
	m.quitting = true
	return tea.Quit
}
