// Package store provides a SQLite session store implementation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"truckfinder-agent/src/llm"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS session_messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	role       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_session_messages_session
	ON session_messages (session_id, id);
`

// SQLiteSessionStore is a SQLite implementation of SessionStore.
// Transcripts are stored one message per row, as JSON.
type SQLiteSessionStore struct {
	db *sql.DB
}

// NewSQLiteSessionStore creates a SQLite session store at the given
// file path, creating the parent directory and schema as needed.
func NewSQLiteSessionStore(path string) (*SQLiteSessionStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// WAL mode so the API and TUI can share one database file.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteSessionStore{db: db}, nil
}

// AppendTurns appends messages to a session's transcript in a single
// transaction.
func (s *SQLiteSessionStore) AppendTurns(ctx context.Context, sessionID string, messages []llm.Message) error {
	if len(messages) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO session_messages (session_id, role, payload, created_at)
		VALUES (?, ?, ?, ?)
	`

	for _, msg := range messages {
		payload, err := json.Marshal(msg)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to marshal message: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, sessionID, msg.Role, string(payload), time.Now()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// History returns a session's transcript in insertion order.
func (s *SQLiteSessionStore) History(ctx context.Context, sessionID string, limit int) ([]llm.Message, error) {
	query := `
		SELECT payload FROM session_messages
		WHERE session_id = ?
		ORDER BY id DESC
	`
	args := []interface{}{sessionID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var messages []llm.Message
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}

		var msg llm.Message
		if err := json.Unmarshal([]byte(payload), &msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	// Rows were read newest-first so the LIMIT keeps the most recent;
	// reverse back into insertion order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// Clear removes a session's transcript.
func (s *SQLiteSessionStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}
