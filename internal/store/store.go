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
)

// Store wraps an SQLite database holding CVs, fetched listings, match results
// and skill recommendations.
type Store struct {
	conn *sql.DB
	path string
	mu   sync.RWMutex
}

// Open opens the SQLite database at the given path, creating parent
// directories as needed. WAL mode is enabled for concurrent reads.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{
		conn: conn,
		path: path,
	}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

func (s *Store) Path() string {
	return s.path
}

// Migrate applies all pending schema migrations.
func (s *Store) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var currentVersion int
	row := s.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("get schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1CVs},
		{2, migrationV2JobListings},
		{3, migrationV3JobMatches},
		{4, migrationV4SkillRecommendations},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}

		tx, err := s.conn.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration v%d: %w", m.version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration v%d: %w", m.version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration v%d: %w", m.version, err)
		}
	}

	return nil
}

const migrationV1CVs = `
CREATE TABLE IF NOT EXISTS cvs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	file_name TEXT,
	raw_text TEXT,
	analysis TEXT,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cvs_user_id ON cvs(user_id);
`

const migrationV2JobListings = `
CREATE TABLE IF NOT EXISTS job_listings (
	id TEXT PRIMARY KEY,
	external_id TEXT NOT NULL UNIQUE,
	source TEXT NOT NULL,
	title TEXT NOT NULL,
	company TEXT,
	location TEXT,
	salary TEXT,
	job_type TEXT,
	experience TEXT,
	url TEXT,
	description TEXT,
	remote INTEGER NOT NULL DEFAULT 0,
	posted_at TEXT,
	fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_job_listings_source ON job_listings(source);
CREATE INDEX IF NOT EXISTS idx_job_listings_posted_at ON job_listings(posted_at);
`

const migrationV3JobMatches = `
CREATE TABLE IF NOT EXISTS job_matches (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	cv_id TEXT NOT NULL,
	job_id TEXT NOT NULL,
	score REAL NOT NULL DEFAULT 0,
	analysis TEXT,
	created_at DATETIME NOT NULL,
	UNIQUE(user_id, cv_id, job_id)
);

CREATE INDEX IF NOT EXISTS idx_job_matches_user_id ON job_matches(user_id);
`

const migrationV4SkillRecommendations = `
CREATE TABLE IF NOT EXISTS skill_recommendations (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	skill_name TEXT NOT NULL,
	category TEXT,
	priority INTEGER NOT NULL DEFAULT 0,
	reason TEXT,
	details TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE(user_id, skill_name)
);

CREATE INDEX IF NOT EXISTS idx_skill_recommendations_user_id ON skill_recommendations(user_id);
`

// Exec executes a query that doesn't return rows.
func (s *Store) Exec(query string, args ...any) (sql.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Exec(query, args...)
}

// Query executes a query that returns rows.
func (s *Store) Query(query string, args ...any) (*sql.Rows, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row.
func (s *Store) QueryRow(query string, args ...any) *sql.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn.QueryRow(query, args...)
}

// formatTime formats a time.Time for SQLite storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime parses a time string from SQLite.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// marshalPayload serializes an optional JSON column value.
func marshalPayload(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}

// unmarshalPayload deserializes an optional JSON column value.
func unmarshalPayload(s sql.NullString, target any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.String), target)
}
