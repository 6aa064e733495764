package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/infoshield/infoshield/internal/adapter/postgres"
	"github.com/infoshield/infoshield/internal/config"
	"github.com/infoshield/infoshield/internal/domain"
	"github.com/infoshield/infoshield/internal/domain/review"
)

// setupStore connects to DATABASE_URL, runs migrations, and returns a
// ready-to-use Store. Tests are skipped when no database is configured.
func setupStore(t *testing.T) *postgres.Store {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping postgres integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	cfg := config.Defaults().Postgres
	cfg.DSN = dsn
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool)
}

func TestCreateListUpdate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	e := review.NewEntry("flood in Chennai", "Chennai", 8, 45)
	if err := s.Create(ctx, e); err != nil {
		t.Fatalf("create: %v", err)
	}

	pending, err := s.List(ctx, review.StatusPending)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got *review.Entry
	for i := range pending {
		if pending[i].SessionID == e.SessionID {
			got = &pending[i]
			break
		}
	}
	if got == nil {
		t.Fatalf("entry %s not in pending list", e.SessionID)
	}
	if got.Query != e.Query || got.UrgencyScore != 8 || got.CredibilityScore != 45 {
		t.Errorf("entry not round-tripped: %+v", got)
	}

	if err := s.UpdateStatus(ctx, e.SessionID, review.StatusVerified, "confirmed by NDRF"); err != nil {
		t.Fatalf("update: %v", err)
	}

	verified, err := s.List(ctx, review.StatusVerified)
	if err != nil {
		t.Fatalf("list verified: %v", err)
	}
	found := false
	for _, v := range verified {
		if v.SessionID == e.SessionID {
			found = true
			if v.ReviewerNotes != "confirmed by NDRF" {
				t.Errorf("notes not persisted: %q", v.ReviewerNotes)
			}
		}
	}
	if !found {
		t.Errorf("entry %s not listed as verified", e.SessionID)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	s := setupStore(t)

	err := s.UpdateStatus(context.Background(), "IS-00000000", review.StatusRejected, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
