package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careerdev/jobagent/internal/jobboard"
)

// UpsertListings stores fetched listings keyed by their board ID. Refetched
// listings update the existing row. Returns the number of rows written.
func (s *Store) UpsertListings(listings jobboard.Listings) (int64, error) {
	if listings.Len() == 0 {
		return 0, nil
	}

	now := formatTime(time.Now())

	var written int64
	for _, listing := range listings {
		if listing == nil || listing.ID == "" {
			continue
		}

		_, err := s.Exec(`
			INSERT INTO job_listings (id, external_id, source, title, company, location, salary, job_type, experience, url, description, remote, posted_at, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(external_id) DO UPDATE SET
				source = excluded.source,
				title = excluded.title,
				company = excluded.company,
				location = excluded.location,
				salary = excluded.salary,
				job_type = excluded.job_type,
				experience = excluded.experience,
				url = excluded.url,
				description = excluded.description,
				remote = excluded.remote,
				posted_at = excluded.posted_at,
				fetched_at = excluded.fetched_at
		`, uuid.NewString(), listing.ID, listing.Source, listing.Title, listing.Company, listing.Location,
			listing.Salary, listing.JobType, listing.Experience, listing.URL, listing.Description, listing.Remote, listing.PostedAt, now)
		if err != nil {
			return written, fmt.Errorf("upsert listing %s: %w", listing.ID, err)
		}

		written++
	}

	return written, nil
}

// ListListings returns stored listings, newest first, capped at limit.
// A non-positive limit returns all rows.
func (s *Store) ListListings(limit int) (jobboard.Listings, error) {
	query := `
		SELECT external_id, source, title, company, location, salary, job_type, experience, url, description, remote, posted_at
		FROM job_listings ORDER BY posted_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings jobboard.Listings
	for rows.Next() {
		var listing jobboard.Listing
		if err := rows.Scan(&listing.ID, &listing.Source, &listing.Title, &listing.Company, &listing.Location,
			&listing.Salary, &listing.JobType, &listing.Experience, &listing.URL, &listing.Description, &listing.Remote, &listing.PostedAt); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, &listing)
	}

	return listings, rows.Err()
}

// ListingsByIDs returns the stored listings with the given board IDs. Missing
// IDs are skipped.
func (s *Store) ListingsByIDs(ids []string) (jobboard.Listings, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.Query(fmt.Sprintf(`
		SELECT external_id, source, title, company, location, salary, job_type, experience, url, description, remote, posted_at
		FROM job_listings WHERE external_id IN (%s)
	`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("listings by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*jobboard.Listing, len(ids))
	for rows.Next() {
		var listing jobboard.Listing
		if err := rows.Scan(&listing.ID, &listing.Source, &listing.Title, &listing.Company, &listing.Location,
			&listing.Salary, &listing.JobType, &listing.Experience, &listing.URL, &listing.Description, &listing.Remote, &listing.PostedAt); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		byID[listing.ID] = &listing
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the requested order.
	var listings jobboard.Listings
	for _, id := range ids {
		if listing, ok := byID[id]; ok {
			listings = append(listings, listing)
		}
	}

	return listings, nil
}
