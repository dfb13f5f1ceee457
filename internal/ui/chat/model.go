// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jeranaias/rigrun-term/internal/backend"
	"github.com/jeranaias/rigrun-term/internal/config"
	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/storage"
	"github.com/jeranaias/rigrun-term/internal/ui/components"
	"github.com/jeranaias/rigrun-term/internal/ui/editor"
	"github.com/jeranaias/rigrun-term/internal/ui/layout"
	"github.com/jeranaias/rigrun-term/internal/ui/render"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// SessionStore persists conversations. *storage.SessionStore implements it.
type SessionStore interface {
	Save(ctx context.Context, sess *storage.StoredSession) (string, error)
	Load(ctx context.Context, id string) (*storage.StoredSession, error)
	List(ctx context.Context) ([]model.SessionSummary, error)
}

// Options configures a new Model.
type Options struct {
	Config  *config.Config
	Backend backend.Backend
	// Store may be nil when persistence is disabled.
	Store SessionStore
	Theme *styles.Theme
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	// Now defaults to time.Now.
	Now func() time.Time
}

// storeTimeout bounds every session store call.
const storeTimeout = 5 * time.Second

// =============================================================================
// MODEL
// =============================================================================

// Model is the chat screen.
type Model struct {
	state  model.AppState
	buffer *editor.Buffer
	keys   KeyMap
	theme  *styles.Theme
	opts   render.Options

	backend   backend.Backend
	store     SessionStore
	clipboard func(string) error
	now       func() time.Time

	// frame is the last painted frame; mouse and scroll input are
	// interpreted against its geometry.
	frame render.Frame

	sessionID      string
	sessionCreated time.Time

	// replySeq increases with every request; cancelReply aborts the
	// request in flight.
	replySeq    int
	cancelReply context.CancelFunc
	ticking     bool
	quitting    bool
}

// New creates the chat model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	be := opts.Backend
	if be == nil {
		be = backend.NewDemo(time.Duration(cfg.Backend.ReplyDelayMS) * time.Millisecond)
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		buffer:    editor.New(""),
		keys:      DefaultKeyMap(),
		theme:     theme,
		backend:   be,
		store:     opts.Store,
		clipboard: copyFn,
		now:       now,
	}
	m.state.Scroll.Pinned = true
	m.applyConfig(cfg)
	m.newSession()
	return m
}

// applyConfig copies the settings the renderer and dropdown read.
func (m *Model) applyConfig(cfg *config.Config) {
	m.opts = RenderOptions(cfg, m.theme, m.keys)

	m.state.Helpers.Enabled = cfg.Commands.Dropdown
	m.state.Helpers.Commands = cfg.Commands.Helpers
	m.syncInput()
}

// RenderOptions maps the configuration onto renderer options.
func RenderOptions(cfg *config.Config, theme *styles.Theme, keys KeyMap) render.Options {
	remap, err := layout.ParseRemapMode(cfg.UI.ScrollRemap)
	if err != nil {
		log.Printf("CONFIG_REMAP_INVALID | value=%s error=%v", cfg.UI.ScrollRemap, err)
		remap = layout.RemapScale
	}

	return render.Options{
		Theme:       theme,
		Prompt:      cfg.UI.Prompt,
		ShellPrompt: cfg.UI.ShellPrompt,
		MaskGlyph:   cfg.MaskRune(),
		Spinner:     styles.SpinnerFor(cfg.UI.Spinner),
		RemapMode:   remap,
		DropdownMax: cfg.UI.DropdownMax,
		Shortcuts:   keys.ShortHelp(),
	}
}

// newSession detaches from the current stored session. The next save
// creates a fresh one.
func (m *Model) newSession() {
	m.sessionID = uuid.NewString()
	m.sessionCreated = m.now()
}

// =============================================================================
// TEA.MODEL
// =============================================================================

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("rigrun-term")
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.frame.String()
}

// State returns a copy of the current application state.
func (m Model) State() model.AppState {
	return m.state
}

// Frame returns the last painted frame.
func (m Model) Frame() render.Frame {
	return m.frame
}

// refresh repaints the frame from the current state.
func (m *Model) refresh() {
	m.opts.Now = m.now()
	m.frame = render.Render(&m.state, m.opts)
}

// syncInput copies the editor into the state and refilters the dropdown.
func (m *Model) syncInput() {
	m.state.Input = m.buffer.Text()
	m.state.Cursor = m.buffer.Cursor()

	h := &m.state.Helpers
	h.Filtered = nil
	if !m.state.Masked {
		h.Filtered = components.FilterHelpers(h.Commands, m.state.Input)
	}
	h.Selected = model.ClampIndex(h.Selected, len(h.Filtered))
}

// =============================================================================
// MESSAGE HELPERS
// =============================================================================

// notice appends a system notice block, one line per text line.
func (m *Model) notice(text string) {
	parts := strings.Split(text, "\n")
	lines := make([]model.Line, len(parts))
	for i, part := range parts {
		lines[i] = model.NewLine(part, m.theme.SystemMessage)
	}
	m.appendMessage(model.NewBlock(model.RoleSystem, lines))
}

// appendMessage adds a message; a pinned view stays at the newest line.
func (m *Model) appendMessage(msg model.Message) {
	m.state.Messages = append(m.state.Messages, msg)
}

// styleFor picks the message style of a role.
func (m *Model) styleFor(role model.Role) lipgloss.Style {
	switch role {
	case model.RoleUser:
		return m.theme.UserMessage
	case model.RoleAssistant:
		return m.theme.AssistantMessage
	default:
		return m.theme.SystemMessage
	}
}

// messagesFromStored rebuilds plain messages of a loaded session.
func (m *Model) messagesFromStored(stored []storage.StoredMessage) []model.Message {
	out := make([]model.Message, 0, len(stored))
	for _, sm := range stored {
		role := model.Role(sm.Role)
		msg := model.NewPlain(role, sm.Content, m.styleFor(role))
		if sm.ID != "" {
			msg.ID = sm.ID
		}
		if !sm.Timestamp.IsZero() {
			msg.Timestamp = sm.Timestamp
		}
		out = append(out, msg)
	}
	return out
}
