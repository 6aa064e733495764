package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/infoshield/infoshield/internal/domain"
	"github.com/infoshield/infoshield/internal/domain/review"
)

// Store implements the review store port backed by a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store on an existing connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Create inserts a new review entry.
func (s *Store) Create(ctx context.Context, e review.Entry) error {
	const q = `INSERT INTO review_entries
		(session_id, query, location, urgency_score, credibility_score,
		 created_at, status, reviewer_notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := s.pool.Exec(ctx, q,
		e.SessionID, e.Query, e.Location, e.UrgencyScore,
		e.CredibilityScore, e.Timestamp, e.Status, e.ReviewerNotes,
	)
	if err != nil {
		return fmt.Errorf("create review entry %s: %w", e.SessionID, err)
	}
	return nil
}

// List returns entries matching the status filter, oldest first.
func (s *Store) List(ctx context.Context, status string) ([]review.Entry, error) {
	const base = `SELECT session_id, query, location, urgency_score,
		credibility_score, created_at, status, reviewer_notes
		FROM review_entries`

	q := base + ` ORDER BY created_at`
	args := []any{}
	if status != "" && status != review.FilterAll {
		q = base + ` WHERE status = $1 ORDER BY created_at`
		args = append(args, status)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list review entries: %w", err)
	}
	defer rows.Close()

	var result []review.Entry
	for rows.Next() {
		var e review.Entry
		if err := rows.Scan(
			&e.SessionID, &e.Query, &e.Location, &e.UrgencyScore,
			&e.CredibilityScore, &e.Timestamp, &e.Status, &e.ReviewerNotes,
		); err != nil {
			return nil, fmt.Errorf("scan review entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// UpdateStatus sets the status and reviewer notes of one entry.
// Returns domain.ErrNotFound for unknown session IDs.
func (s *Store) UpdateStatus(ctx context.Context, sessionID, status, notes string) error {
	const q = `UPDATE review_entries SET status = $2, reviewer_notes = $3
		WHERE session_id = $1`
	tag, err := s.pool.Exec(ctx, q, sessionID, status, notes)
	if err != nil {
		return fmt.Errorf("update review entry %s: %w", sessionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update review entry %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}
