// Package archive keeps a local record of completed chat turns.
package archive

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	conversation_id TEXT NOT NULL,
	question        TEXT NOT NULL,
	answer          TEXT NOT NULL,
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_turns_conversation ON turns(conversation_id);
CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at);
`

// =============================================================================
// ARCHIVE
// =============================================================================

// Turn is one recorded question/answer pair.
type Turn struct {
	ConversationID string
	Question       string
	Answer         string
	CreatedAt      time.Time
}

// Archive is the local turn record.
type Archive struct {
	db *sql.DB
}

// Open creates or opens the archive database at path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// The archive is written from the event loop only.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// =============================================================================
// WRITES
// =============================================================================

// RecordTurn stores one completed turn.
func (a *Archive) RecordTurn(conversationID, question, answer string) error {
	_, err := a.db.Exec(
		`INSERT INTO turns (conversation_id, question, answer, created_at) VALUES (?, ?, ?, ?)`,
		conversationID, question, answer, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	return nil
}

// Prune removes turns older than the retention window.
func (a *Archive) Prune(retention time.Duration) error {
	cutoff := time.Now().UTC().Add(-retention)
	_, err := a.db.Exec(`DELETE FROM turns WHERE created_at < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("prune archive: %w", err)
	}
	return nil
}

// =============================================================================
// READS
// =============================================================================

// RecentTurns returns up to limit turns, newest first.
func (a *Archive) RecentTurns(limit int) ([]Turn, error) {
	rows, err := a.db.Query(
		`SELECT conversation_id, question, answer, created_at FROM turns ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// ConversationTurns returns all recorded turns for one conversation, oldest
// first.
func (a *Archive) ConversationTurns(conversationID string) ([]Turn, error) {
	rows, err := a.db.Query(
		`SELECT conversation_id, question, answer, created_at FROM turns WHERE conversation_id = ? ORDER BY id`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// Search returns turns whose question or answer contains the query,
// case-insensitively, newest first.
func (a *Archive) Search(query string, limit int) ([]Turn, error) {
	pattern := "%" + query + "%"
	rows, err := a.db.Query(
		`SELECT conversation_id, question, answer, created_at FROM turns
		 WHERE question LIKE ? OR answer LIKE ? ORDER BY id DESC LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search archive: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

func scanTurns(rows *sql.Rows) ([]Turn, error) {
	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ConversationID, &t.Question, &t.Answer, &t.CreatedAt); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
