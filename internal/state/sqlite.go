package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates an unopened store.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the SQLite database at path. Use ":memory:" for an in-memory
// store.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping state database: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("state store opened", "path", path)
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveWidgetState inserts or replaces the state for (sessionID, widgetID).
func (s *SQLiteStore) SaveWidgetState(sessionID, widgetID string, stateBlob json.RawMessage) error {
	if s.db == nil {
		return fmt.Errorf("state database not opened")
	}
	if !json.Valid(stateBlob) {
		return fmt.Errorf("widget state for %q is not valid JSON", widgetID)
	}

	_, err := s.db.Exec(
		`INSERT INTO widget_state (id, session_id, widget_id, state, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (session_id, widget_id)
		 DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		uuid.NewString(), sessionID, widgetID, string(stateBlob), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save widget state: %w", err)
	}
	return nil
}

// GetWidgetState returns the saved state, or nil when none exists.
func (s *SQLiteStore) GetWidgetState(sessionID, widgetID string) (json.RawMessage, error) {
	if s.db == nil {
		return nil, fmt.Errorf("state database not opened")
	}

	var blob string
	err := s.db.QueryRow(
		`SELECT state FROM widget_state WHERE session_id = ? AND widget_id = ?`,
		sessionID, widgetID,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get widget state: %w", err)
	}
	return json.RawMessage(blob), nil
}

// DeleteWidgetState removes the saved state for (sessionID, widgetID).
func (s *SQLiteStore) DeleteWidgetState(sessionID, widgetID string) error {
	if s.db == nil {
		return fmt.Errorf("state database not opened")
	}

	_, err := s.db.Exec(
		`DELETE FROM widget_state WHERE session_id = ? AND widget_id = ?`,
		sessionID, widgetID,
	)
	if err != nil {
		return fmt.Errorf("delete widget state: %w", err)
	}
	return nil
}
