// Package service wires the verification pipeline and the human-review
// queue to their stores, collaborators and event surfaces.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/infoshield/infoshield/internal/adapter/ws"
	"github.com/infoshield/infoshield/internal/domain"
	"github.com/infoshield/infoshield/internal/domain/review"
	"github.com/infoshield/infoshield/internal/port/broadcast"
	"github.com/infoshield/infoshield/internal/port/database"
	"github.com/infoshield/infoshield/internal/port/messagequeue"
)

// ReviewService manages the human-review queue and fans out queue
// changes over NATS and WebSocket. Both the queue and the hub are
// optional; a nil dependency simply skips that surface.
type ReviewService struct {
	store database.ReviewStore
	queue messagequeue.Queue
	hub   broadcast.Broadcaster
}

// NewReviewService creates a ReviewService.
func NewReviewService(store database.ReviewStore, queue messagequeue.Queue, hub broadcast.Broadcaster) *ReviewService {
	return &ReviewService{store: store, queue: queue, hub: hub}
}

// Flag parks a query for human verification and returns the created entry.
func (s *ReviewService) Flag(ctx context.Context, query, location string, urgencyScore, credibilityScore int) (review.Entry, error) {
	entry := review.NewEntry(query, location, urgencyScore, credibilityScore)
	if err := s.store.Create(ctx, entry); err != nil {
		return review.Entry{}, fmt.Errorf("flag for review: %w", err)
	}

	s.publish(ctx, messagequeue.SubjectReviewFlagged, messagequeue.ReviewFlaggedPayload{
		SessionID:        entry.SessionID,
		Query:            entry.Query,
		Location:         entry.Location,
		UrgencyScore:     entry.UrgencyScore,
		CredibilityScore: entry.CredibilityScore,
		ReviewTime:       review.EstimateReviewTime(entry.UrgencyScore),
	})
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventReviewFlagged, ws.ReviewFlaggedEvent{
			SessionID:        entry.SessionID,
			Query:            entry.Query,
			UrgencyScore:     entry.UrgencyScore,
			CredibilityScore: entry.CredibilityScore,
		})
	}

	slog.Info("query flagged for human review",
		"session_id", entry.SessionID,
		"urgency", entry.UrgencyScore,
		"credibility", entry.CredibilityScore,
	)
	return entry, nil
}

// List returns review entries matching the status filter. An empty
// filter defaults to pending entries.
func (s *ReviewService) List(ctx context.Context, status string) ([]review.Entry, error) {
	if status == "" {
		status = review.StatusPending
	}
	if status != review.FilterAll && !review.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status filter %q", domain.ErrValidation, status)
	}
	return s.store.List(ctx, status)
}

// UpdateStatus records a reviewer's decision on one entry.
func (s *ReviewService) UpdateStatus(ctx context.Context, sessionID, status, notes string) error {
	if !review.ValidStatus(status) {
		return fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}
	if err := s.store.UpdateStatus(ctx, sessionID, status, notes); err != nil {
		return err
	}

	s.publish(ctx, messagequeue.SubjectReviewUpdated, messagequeue.ReviewUpdatedPayload{
		SessionID: sessionID,
		Status:    status,
		Notes:     notes,
	})
	if s.hub != nil {
		s.hub.BroadcastEvent(ctx, ws.EventReviewUpdated, ws.ReviewUpdatedEvent{
			SessionID: sessionID,
			Status:    status,
		})
	}

	slog.Info("review entry updated", "session_id", sessionID, "status", status)
	return nil
}

// publish marshals the payload and publishes it, logging failures
// instead of propagating them. Queue outages must not block reviews.
func (s *ReviewService) publish(ctx context.Context, subject string, payload any) {
	if s.queue == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal queue payload", "subject", subject, "error", err)
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Error("publish queue message", "subject", subject, "error", err)
	}
}
