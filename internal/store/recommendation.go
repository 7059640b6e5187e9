package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careerdev/jobagent/internal/ai"
)

// Recommendation is a stored skill recommendation for a user.
type Recommendation struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	SkillName string                  `json:"skill_name"`
	Category  string                  `json:"category,omitempty"`
	Priority  int                     `json:"priority"`
	Reason    string                  `json:"reason,omitempty"`
	Details   *ai.SkillRecommendation `json:"details,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// SaveRecommendations upserts a user's recommendations keyed by skill name,
// so regenerating refreshes instead of duplicating. Returns the number of
// rows written.
func (s *Store) SaveRecommendations(userID string, recommendations []ai.SkillRecommendation) (int64, error) {
	now := formatTime(time.Now())

	var written int64
	for i := range recommendations {
		rec := recommendations[i]
		if rec.Skill == "" {
			continue
		}

		details, err := marshalPayload(rec)
		if err != nil {
			return written, err
		}

		_, err = s.Exec(`
			INSERT INTO skill_recommendations (id, user_id, skill_name, category, priority, reason, details, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(user_id, skill_name) DO UPDATE SET
				category = excluded.category,
				priority = excluded.priority,
				reason = excluded.reason,
				details = excluded.details,
				updated_at = excluded.updated_at
		`, uuid.NewString(), userID, rec.Skill, rec.Category, rec.Priority, rec.Reason, details, now, now)
		if err != nil {
			return written, fmt.Errorf("save recommendation %s: %w", rec.Skill, err)
		}

		written++
	}

	return written, nil
}

// RecommendationsForUser returns a user's stored recommendations, highest
// priority first.
func (s *Store) RecommendationsForUser(userID string) ([]*Recommendation, error) {
	rows, err := s.Query(`
		SELECT id, user_id, skill_name, category, priority, reason, details, created_at, updated_at
		FROM skill_recommendations WHERE user_id = ?
		ORDER BY priority DESC, skill_name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("recommendations for user: %w", err)
	}
	defer rows.Close()

	var recommendations []*Recommendation
	for rows.Next() {
		var r Recommendation
		var details sql.NullString
		var createdAt, updatedAt string

		if err := rows.Scan(&r.ID, &r.UserID, &r.SkillName, &r.Category, &r.Priority, &r.Reason, &details, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}

		if err := unmarshalPayload(details, &r.Details); err != nil {
			return nil, fmt.Errorf("decode recommendation details: %w", err)
		}

		r.CreatedAt, _ = parseTime(createdAt)
		r.UpdatedAt, _ = parseTime(updatedAt)

		recommendations = append(recommendations, &r)
	}

	return recommendations, rows.Err()
}
