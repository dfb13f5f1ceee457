// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/rigrun-term/internal/backend"
	"github.com/jeranaias/rigrun-term/internal/config"
	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/storage"
	"github.com/jeranaias/rigrun-term/internal/ui/components"
	"github.com/jeranaias/rigrun-term/internal/ui/styles"
	"github.com/jeranaias/rigrun-term/internal/ui/wrap"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the plain REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// ReadSecret reads a line without echoing it. Secrets never enter history.
func (c *ChatCLI) ReadSecret(prompt string) (string, error) {
	return c.line.PasswordPrompt(prompt)
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// PLAIN REPL
// =============================================================================

// replSession is the state of one plain REPL run.
type replSession struct {
	backend  backend.Backend
	store    *storage.SessionStore
	theme    *styles.Theme
	out      io.Writer
	width    int
	messages []model.Message
	id       string
	created  time.Time
}

// runPlain runs the line-oriented chat used when no full-screen terminal is
// available.
func runPlain(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	width, _ := GetTerminalSize()
	s := &replSession{
		backend: backend.NewDemo(time.Duration(cfg.Backend.ReplyDelayMS) * time.Millisecond),
		store:   store,
		theme:   styles.NewTheme(),
		out:     cmd.OutOrStdout(),
		width:   width,
		created: time.Now(),
	}

	chatCLI := NewChatCLI()
	defer chatCLI.Close()

	_, _ = fmt.Fprintln(s.out, "rigrun-term "+Version+" (type /quit to exit)")
	wantSecret := false
	for {
		var input string
		if wantSecret {
			input, err = chatCLI.ReadSecret("secret: ")
			wantSecret = false
			if err == nil {
				_, _ = fmt.Fprintf(s.out, "Secret received (%d characters)\n", len([]rune(input)))
				continue
			}
		} else {
			input, err = chatCLI.ReadInput(cfg.UI.Prompt)
		}
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		switch input {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/help":
			_, _ = fmt.Fprintln(s.out, "Type a message and press enter. /quit exits.")
			continue
		}

		reply, err := s.send(cmd.Context(), input)
		if err != nil {
			_, _ = fmt.Fprintln(s.out, "Backend error: "+err.Error())
			continue
		}
		for _, row := range ReplyRows(reply.Text, s.width, s.theme) {
			_, _ = fmt.Fprintln(s.out, row)
		}

		if reply.ToolCall != "" {
			summary := components.CommandSummary(reply.ToolCall)
			answer, err := chatCLI.ReadInput("Run command: " + summary + " [y/N] ")
			if err != nil {
				return nil
			}
			if strings.EqualFold(strings.TrimSpace(answer), "y") {
				log.Printf("CONFIRM | choice=yes command=%q", summary)
				_, _ = fmt.Fprintln(s.out, "Approved: "+summary)
			} else {
				log.Printf("CONFIRM | choice=no command=%q", summary)
				_, _ = fmt.Fprintln(s.out, "Declined: "+summary)
			}
		}
		wantSecret = reply.WantSecret
	}
}

// send records the prompt, asks the backend and records the reply.
func (s *replSession) send(ctx context.Context, prompt string) (backend.Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.messages = append(s.messages, model.NewPlain(model.RoleUser, prompt, s.theme.UserMessage))
	reply, err := s.backend.Reply(ctx, prompt)
	if err != nil {
		log.Printf("BACKEND_ERROR | error=%v", err)
		return backend.Reply{}, err
	}
	log.Printf("BACKEND_REPLY | checkpoint=%s tool_call=%t", reply.Checkpoint, reply.ToolCall != "")
	s.messages = append(s.messages, model.NewPlain(model.RoleAssistant, reply.Text, s.theme.AssistantMessage))
	s.save(ctx)
	return reply, nil
}

func (s *replSession) save(ctx context.Context) {
	if s.store == nil {
		return
	}
	sess := &storage.StoredSession{
		ID:        s.id,
		CreatedAt: s.created,
		Messages:  storage.FromMessages(s.messages),
	}
	id, err := s.store.Save(ctx, sess)
	if err != nil {
		log.Printf("SESSION_SAVE_FAILED | id=%s error=%v", s.id, err)
		return
	}
	s.id = id
}

// ReplyRows wraps a reply, rewrites its section markers and renders each
// resulting line.
func ReplyRows(text string, width int, theme *styles.Theme) []string {
	wrapped := wrap.Lines(text, width, 0)
	raw := make([]model.Line, len(wrapped))
	for i, line := range wrapped {
		raw[i] = model.NewLine(line, theme.AssistantMessage)
	}
	processed := components.ProcessTags(raw, width, theme)
	rows := make([]string, len(processed.Lines))
	for i, line := range processed.Lines {
		rows[i] = line.Render()
	}
	return rows
}
