// Package database defines the review store port (interface).
package database

import (
	"context"

	"github.com/infoshield/infoshield/internal/domain/review"
)

// ReviewStore is the port interface for the human-review queue.
// Implementations must return domain.ErrNotFound from UpdateStatus when
// the session ID is unknown.
type ReviewStore interface {
	// Create appends a new entry to the queue.
	Create(ctx context.Context, entry review.Entry) error

	// List returns entries matching the status filter. An empty filter
	// or review.FilterAll returns every entry.
	List(ctx context.Context, status string) ([]review.Entry, error)

	// UpdateStatus sets the status and reviewer notes of one entry.
	UpdateStatus(ctx context.Context, sessionID, status, notes string) error
}
