// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/rigrun-term/internal/model"
	"github.com/jeranaias/rigrun-term/internal/util"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrSessionNotFound is returned when a session id is unknown.
// Use errors.Is(err, ErrSessionNotFound) to check for it.
var ErrSessionNotFound = errors.New("session not found")

// =============================================================================
// STORED TYPES
// =============================================================================

// StoredSession is a persisted conversation.
type StoredSession struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  []StoredMessage
}

// StoredMessage is one persisted message.
type StoredMessage struct {
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
}

// maxTitleRunes bounds generated session titles.
const maxTitleRunes = 50

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id         TEXT NOT NULL,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (session_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);
`

// =============================================================================
// SESSION STORE
// =============================================================================

// SessionStore reads and writes sessions. It is safe for concurrent use.
type SessionStore struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.rigrun-term/sessions.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".rigrun-term", "sessions.db"), nil
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*SessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SessionStore{db: db, path: path}, nil
}

// Path returns the database file location.
func (s *SessionStore) Path() string {
	return s.path
}

// Close releases the database.
func (s *SessionStore) Close() error {
	return s.db.Close()
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save writes the session and all of its messages, replacing any previous
// version, and returns its id. A missing id or title is generated.
func (s *SessionStore) Save(ctx context.Context, sess *StoredSession) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Title == "" {
		sess.Title = generateTitle(sess.Messages)
	}
	now := time.Now()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		sess.ID, sess.Title, sess.CreatedAt.UnixNano(), sess.UpdatedAt.UnixNano())
	if err != nil {
		return "", fmt.Errorf("save session %s: %w", sess.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sess.ID); err != nil {
		return "", fmt.Errorf("clear messages of %s: %w", sess.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (id, session_id, seq, role, content, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare message insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range sess.Messages {
		if msg.ID == "" {
			msg.ID = uuid.NewString()
		}
		ts := msg.Timestamp
		if ts.IsZero() {
			ts = now
		}
		if _, err := stmt.ExecContext(ctx, msg.ID, sess.ID, i, msg.Role, msg.Content, ts.UnixNano()); err != nil {
			return "", fmt.Errorf("save message %d of %s: %w", i, sess.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit session %s: %w", sess.ID, err)
	}
	return sess.ID, nil
}

// generateTitle uses the first user message, cut to one short line.
func generateTitle(messages []StoredMessage) string {
	for _, msg := range messages {
		if msg.Role == string(model.RoleUser) {
			title := strings.TrimSpace(util.SingleLine(msg.Content))
			if title != "" {
				return util.TruncateRunes(title, maxTitleRunes)
			}
		}
	}
	return "Untitled session"
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load returns the session with its messages in order.
func (s *SessionStore) Load(ctx context.Context, id string) (*StoredSession, error) {
	sess := &StoredSession{ID: id}
	var created, updated int64
	err := s.db.QueryRowContext(ctx,
		`SELECT title, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&sess.Title, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	sess.CreatedAt = time.Unix(0, created)
	sess.UpdatedAt = time.Unix(0, updated)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, content, created_at FROM messages WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("load messages of %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg StoredMessage
		var ts int64
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &ts); err != nil {
			return nil, fmt.Errorf("scan message of %s: %w", id, err)
		}
		msg.Timestamp = time.Unix(0, ts)
		sess.Messages = append(sess.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load messages of %s: %w", id, err)
	}
	return sess, nil
}

// List returns summaries of all sessions, most recently updated first.
func (s *SessionStore) List(ctx context.Context) ([]model.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.created_at, s.updated_at, COUNT(m.seq)
		FROM sessions s LEFT JOIN messages m ON m.session_id = s.id
		GROUP BY s.id
		ORDER BY s.updated_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []model.SessionSummary
	for rows.Next() {
		var sum model.SessionSummary
		var created, updated int64
		if err := rows.Scan(&sum.ID, &sum.Title, &created, &updated, &sum.MessageCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.CreatedAt = time.Unix(0, created)
		sum.UpdatedAt = time.Unix(0, updated)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes a session and its messages.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete messages of %s: %w", id, err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// =============================================================================
// MESSAGE CONVERSION
// =============================================================================

// FromMessages keeps the plain text messages of a conversation.
func FromMessages(messages []model.Message) []StoredMessage {
	out := make([]StoredMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.Kind != model.KindPlain {
			continue
		}
		out = append(out, StoredMessage{
			ID:        msg.ID,
			Role:      msg.Role.String(),
			Content:   msg.Text,
			Timestamp: msg.Timestamp,
		})
	}
	return out
}
