// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/rigrun-term/internal/util"
)

// ErrEmptyPrompt is returned when the prompt has no content.
var ErrEmptyPrompt = errors.New("empty prompt")

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Reply is one assistant turn.
type Reply struct {
	// Text is the message body, possibly containing section markers.
	Text string
	// ToolCall is a JSON tool call awaiting user confirmation, or empty.
	ToolCall string
	// WantSecret asks the UI to mask the next input.
	WantSecret bool
	// Checkpoint is the checkpoint ID embedded in Text.
	Checkpoint string
}

// Backend answers prompts.
type Backend interface {
	Reply(ctx context.Context, prompt string) (Reply, error)
}

// =============================================================================
// DEMO BACKEND
// =============================================================================

// Demo is a scripted Backend. It is safe for concurrent use.
type Demo struct {
	// Delay is how long Reply waits before answering.
	Delay time.Duration
	// Mode is reported in the agent mode badge.
	Mode string
}

// NewDemo creates a demo backend with the given reply delay.
func NewDemo(delay time.Duration) *Demo {
	return &Demo{Delay: delay, Mode: "chat"}
}

// Reply waits for the configured delay, then returns a structured answer.
// It returns the context error if ctx is cancelled first.
func (d *Demo) Reply(ctx context.Context, prompt string) (Reply, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Reply{}, ErrEmptyPrompt
	}

	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, fmt.Errorf("reply cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Reply{}, fmt.Errorf("reply cancelled: %w", err)
	}

	checkpoint := NewCheckpointID()
	reply := Reply{Checkpoint: checkpoint}

	lower := strings.ToLower(prompt)
	var answer string
	switch {
	case strings.HasPrefix(lower, "run "):
		command := strings.TrimSpace(prompt[len("run "):])
		call, err := ToolCall("shell", command)
		if err != nil {
			return Reply{}, err
		}
		reply.ToolCall = call
		answer = fmt.Sprintf("I can run `%s` for you once you confirm.", command)
	case strings.Contains(lower, "password") || strings.Contains(lower, "token"):
		reply.WantSecret = true
		answer = "Enter the secret below. It will not be shown on screen."
	default:
		answer = fmt.Sprintf("You said: %s", prompt)
	}

	reply.Text = d.compose(prompt, answer, checkpoint)
	return reply, nil
}

// compose lays out the reply with one marker per line.
func (d *Demo) compose(prompt, answer, checkpoint string) string {
	mode := d.Mode
	if mode == "" {
		mode = "chat"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<agent_mode>%s</agent_mode>\n", mode)
	b.WriteString("<planning>\n")
	fmt.Fprintf(&b, "Read the request: %q\n", util.TruncateRunes(util.SingleLine(prompt), 40))
	b.WriteString("Draft a short answer\n")
	b.WriteString("</planning>\n")
	b.WriteString("<notes>\n")
	fmt.Fprintf(&b, "Prompt length: %d characters\n", len([]rune(prompt)))
	b.WriteString("</notes>\n")
	b.WriteString("SPACING_MARKER\n")
	b.WriteString(answer)
	b.WriteString("\n")
	fmt.Fprintf(&b, "<checkpoint_id>%s</checkpoint_id>", checkpoint)
	return b.String()
}

// NewCheckpointID returns a short random checkpoint identifier.
func NewCheckpointID() string {
	return uuid.NewString()[:8]
}

// ToolCall encodes a function-style tool call payload.
func ToolCall(name, command string) (string, error) {
	args, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return "", fmt.Errorf("failed to encode tool arguments: %w", err)
	}
	payload, err := json.Marshal(map[string]any{
		"function": map[string]string{
			"name":      name,
			"arguments": string(args),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode tool call: %w", err)
	}
	return string(payload), nil
}
