// Package store persists conversation transcripts to SQLite. Each session
// groups the turns exchanged with one persona; turns are written as the
// exchange settles, so a session can be listed and reloaded later.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"quantumedge/internal/convo"
	"quantumedge/internal/logging"
)

// TranscriptStore is the SQLite-backed transcript database.
type TranscriptStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// SessionInfo summarizes one stored session.
type SessionInfo struct {
	ID        string
	Persona   string
	StartedAt time.Time
	TurnCount int
	Preview   string
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	persona TEXT NOT NULL,
	started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS turns (
	session_id TEXT NOT NULL,
	turn_number INTEGER NOT NULL,
	role TEXT NOT NULL,
	text TEXT NOT NULL,
	sources_json TEXT,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (session_id, turn_number)
);
CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id);
`

// NewTranscriptStore opens (or creates) the database at path.
func NewTranscriptStore(path string) (*TranscriptStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewTranscriptStore")
	defer timer.Stop()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("failed to set journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply transcript schema: %w", err)
	}

	logging.Store("transcript store ready at %s", path)
	return &TranscriptStore{db: db, dbPath: path}, nil
}

// BeginSession registers a session for a persona.
func (s *TranscriptStore) BeginSession(sessionID, persona string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO sessions (id, persona) VALUES (?, ?)",
		sessionID, persona,
	)
	if err != nil {
		return fmt.Errorf("failed to begin session: %w", err)
	}
	return nil
}

// SaveTurn records one turn. Duplicate (session, turn_number) writes are
// silently skipped so re-saving a settled exchange is idempotent.
func (s *TranscriptStore) SaveTurn(sessionID string, turnNumber int, turn convo.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sourcesJSON []byte
	if len(turn.Sources) > 0 {
		var err error
		sourcesJSON, err = json.Marshal(turn.Sources)
		if err != nil {
			return fmt.Errorf("failed to marshal sources: %w", err)
		}
	}

	logging.StoreDebug("saving turn: session=%s turn=%d role=%s", sessionID, turnNumber, turn.Role)
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO turns (session_id, turn_number, role, text, sources_json)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, turnNumber, string(turn.Role), turn.Text, nullableString(sourcesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// ListSessions returns stored sessions, newest first.
func (s *TranscriptStore) ListSessions(limit int) ([]SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT s.id, s.persona, s.started_at,
		        (SELECT COUNT(*) FROM turns t WHERE t.session_id = s.id),
		        COALESCE((SELECT text FROM turns t WHERE t.session_id = s.id AND t.role = 'user' ORDER BY t.turn_number LIMIT 1), '')
		 FROM sessions s
		 ORDER BY s.started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.Persona, &info.StartedAt, &info.TurnCount, &info.Preview); err != nil {
			continue
		}
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// LoadSession returns a session's turns in chronological order.
func (s *TranscriptStore) LoadSession(sessionID string) ([]convo.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT role, text, sources_json, created_at
		 FROM turns WHERE session_id = ?
		 ORDER BY turn_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	var turns []convo.Turn
	for rows.Next() {
		var (
			role        string
			text        string
			sourcesJSON sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&role, &text, &sourcesJSON, &createdAt); err != nil {
			continue
		}
		turn := convo.Turn{Role: convo.Role(role), Text: text, Time: createdAt}
		if sourcesJSON.Valid && sourcesJSON.String != "" {
			_ = json.Unmarshal([]byte(sourcesJSON.String), &turn.Sources)
		}
		turns = append(turns, turn)
	}
	return turns, rows.Err()
}

// Close closes the database.
func (s *TranscriptStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func nullableString(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
