package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careerdev/jobagent/internal/ai"
)

// Match is a stored score of one CV against one job.
type Match struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	CVID      string         `json:"cv_id"`
	JobID     string         `json:"job_id"`
	Score     float64        `json:"score"`
	Analysis  *ai.MatchScore `json:"analysis,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SaveMatch inserts the match or refreshes the score and analysis when the
// same CV and job were matched before.
func (s *Store) SaveMatch(m *Match) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	var analysis string
	if m.Analysis != nil {
		var err error
		analysis, err = marshalPayload(m.Analysis)
		if err != nil {
			return err
		}
	}

	_, err := s.Exec(`
		INSERT INTO job_matches (id, user_id, cv_id, job_id, score, analysis, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, cv_id, job_id) DO UPDATE SET
			score = excluded.score,
			analysis = excluded.analysis
	`, m.ID, m.UserID, m.CVID, m.JobID, m.Score, analysis, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("save match: %w", err)
	}

	return nil
}

// MatchesForUser returns a user's stored matches, best score first.
func (s *Store) MatchesForUser(userID string) ([]*Match, error) {
	rows, err := s.Query(`
		SELECT id, user_id, cv_id, job_id, score, analysis, created_at
		FROM job_matches WHERE user_id = ?
		ORDER BY score DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("matches for user: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*Match, error) {
	var m Match
	var analysis sql.NullString
	var createdAt string

	if err := row.Scan(&m.ID, &m.UserID, &m.CVID, &m.JobID, &m.Score, &analysis, &createdAt); err != nil {
		return nil, fmt.Errorf("scan match: %w", err)
	}

	if err := unmarshalPayload(analysis, &m.Analysis); err != nil {
		return nil, fmt.Errorf("decode match analysis: %w", err)
	}

	m.CreatedAt, _ = parseTime(createdAt)

	return &m, nil
}
