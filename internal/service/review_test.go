package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/infoshield/infoshield/internal/domain"
	"github.com/infoshield/infoshield/internal/domain/review"
)

func TestFlagCreatesPendingEntry(t *testing.T) {
	store := &memStore{}
	hub := &fakeHub{}
	svc := NewReviewService(store, nil, hub)

	entry, err := svc.Flag(context.Background(), "flood in Chennai?", "Chennai", 8, 45)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Status != review.StatusPending {
		t.Errorf("expected pending status, got %q", entry.Status)
	}
	if !strings.HasPrefix(entry.SessionID, "IS-") {
		t.Errorf("expected IS- prefixed session ID, got %q", entry.SessionID)
	}
	if hub.count("review.flagged") != 1 {
		t.Errorf("expected one flagged event, got %d", hub.count("review.flagged"))
	}
}

func TestListDefaultsToPending(t *testing.T) {
	store := &memStore{}
	svc := NewReviewService(store, nil, nil)
	ctx := context.Background()

	e, err := svc.Flag(ctx, "flood in Chennai?", "Chennai", 8, 45)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateStatus(ctx, e.SessionID, review.StatusRejected, "no evidence"); err != nil {
		t.Fatal(err)
	}

	pending, err := svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending entries, got %d", len(pending))
	}

	all, err := svc.List(ctx, review.FilterAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 entry, got %d", len(all))
	}
}

func TestListInvalidFilter(t *testing.T) {
	svc := NewReviewService(&memStore{}, nil, nil)

	_, err := svc.List(context.Background(), "bogus")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc := NewReviewService(&memStore{}, nil, nil)

	err := svc.UpdateStatus(context.Background(), "IS-deadbeef", "approved", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := NewReviewService(&memStore{}, nil, nil)

	err := svc.UpdateStatus(context.Background(), "IS-deadbeef", review.StatusVerified, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestUpdateStatusBroadcasts(t *testing.T) {
	store := &memStore{}
	hub := &fakeHub{}
	svc := NewReviewService(store, nil, hub)
	ctx := context.Background()

	e, err := svc.Flag(ctx, "flood in Chennai?", "Chennai", 8, 45)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateStatus(ctx, e.SessionID, review.StatusVerified, "confirmed"); err != nil {
		t.Fatal(err)
	}
	if hub.count("review.updated") != 1 {
		t.Errorf("expected one updated event, got %d", hub.count("review.updated"))
	}
}
