package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careerdev/jobagent/internal/ai"
)

// CV is a stored résumé with its extracted analysis.
type CV struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	FileName  string         `json:"file_name,omitempty"`
	RawText   string         `json:"raw_text,omitempty"`
	Analysis  *ai.CVAnalysis `json:"analysis,omitempty"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SaveCV inserts the CV or updates it in place when the ID already exists.
func (s *Store) SaveCV(cv *CV) error {
	if cv.ID == "" {
		cv.ID = uuid.NewString()
	}

	now := time.Now()
	if cv.CreatedAt.IsZero() {
		cv.CreatedAt = now
	}
	cv.UpdatedAt = now

	var analysis string
	if cv.Analysis != nil {
		var err error
		analysis, err = marshalPayload(cv.Analysis)
		if err != nil {
			return err
		}
	}

	_, err := s.Exec(`
		INSERT INTO cvs (id, user_id, file_name, raw_text, analysis, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			file_name = excluded.file_name,
			raw_text = excluded.raw_text,
			analysis = excluded.analysis,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`, cv.ID, cv.UserID, cv.FileName, cv.RawText, analysis, cv.IsActive, formatTime(cv.CreatedAt), formatTime(cv.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save cv: %w", err)
	}

	return nil
}

// GetCV retrieves a CV by ID. Returns nil when not found.
func (s *Store) GetCV(id string) (*CV, error) {
	row := s.QueryRow(`
		SELECT id, user_id, file_name, raw_text, analysis, is_active, created_at, updated_at
		FROM cvs WHERE id = ?
	`, id)

	return scanCV(row)
}

// LatestCVForUser retrieves the most recently updated active CV of a user.
// Returns nil when the user has none.
func (s *Store) LatestCVForUser(userID string) (*CV, error) {
	row := s.QueryRow(`
		SELECT id, user_id, file_name, raw_text, analysis, is_active, created_at, updated_at
		FROM cvs WHERE user_id = ? AND is_active = 1
		ORDER BY updated_at DESC LIMIT 1
	`, userID)

	return scanCV(row)
}

func scanCV(row *sql.Row) (*CV, error) {
	var cv CV
	var analysis sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(&cv.ID, &cv.UserID, &cv.FileName, &cv.RawText, &analysis, &cv.IsActive, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cv: %w", err)
	}

	if err := unmarshalPayload(analysis, &cv.Analysis); err != nil {
		return nil, fmt.Errorf("decode cv analysis: %w", err)
	}

	cv.CreatedAt, _ = parseTime(createdAt)
	cv.UpdatedAt, _ = parseTime(updatedAt)

	return &cv, nil
}

// DeactivateCV marks a CV as inactive, excluding it from matching and making
// it eligible for cleanup.
func (s *Store) DeactivateCV(id string) error {
	_, err := s.Exec(`UPDATE cvs SET is_active = 0, updated_at = ? WHERE id = ?`, formatTime(time.Now()), id)
	if err != nil {
		return fmt.Errorf("deactivate cv: %w", err)
	}
	return nil
}

// CleanupOldCVs deletes inactive CVs last touched before the cutoff.
// Returns the number deleted.
func (s *Store) CleanupOldCVs(olderThan time.Duration) (int64, error) {
	cutoff := formatTime(time.Now().Add(-olderThan))

	result, err := s.Exec(`DELETE FROM cvs WHERE is_active = 0 AND updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old cvs: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return count, nil
}
