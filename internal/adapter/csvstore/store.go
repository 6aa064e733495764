// Package csvstore implements the review store port on a flat CSV file.
// It is the default queue backend for single-node deployments where a
// database is not available.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/infoshield/infoshield/internal/domain"
	"github.com/infoshield/infoshield/internal/domain/review"
)

// Store persists review entries in a CSV file. All operations are
// serialized through a mutex; the file is rewritten atomically on
// status updates via a temp file and rename.
type Store struct {
	mu   sync.Mutex
	path string
}

// New opens (or creates) the CSV queue at path. A new file gets the
// header row written immediately.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create queue directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	switch {
	case err == nil:
		w := csv.NewWriter(f)
		if err := w.Write(review.CSVHeaders()); err != nil {
			f.Close()
			return nil, fmt.Errorf("write queue header: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, fmt.Errorf("flush queue header: %w", err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close queue file: %w", err)
		}
	case os.IsExist(err):
		// Existing queue, keep its contents.
	default:
		return nil, fmt.Errorf("create queue file: %w", err)
	}

	return &Store{path: path}, nil
}

// Create appends a new entry to the queue file.
func (s *Store) Create(_ context.Context, entry review.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open queue file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(toRecord(entry)); err != nil {
		return fmt.Errorf("append review entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush review entry: %w", err)
	}
	return nil
}

// List returns entries matching the status filter, in file order.
func (s *Store) List(_ context.Context, status string) ([]review.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	if status == "" || status == review.FilterAll {
		return entries, nil
	}

	filtered := make([]review.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status == status {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// UpdateStatus rewrites the queue file with the entry's status and
// notes changed. Returns domain.ErrNotFound for unknown session IDs.
func (s *Store) UpdateStatus(_ context.Context, sessionID, status, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].SessionID == sessionID {
			entries[i].Status = status
			entries[i].ReviewerNotes = notes
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("review entry %s: %w", sessionID, domain.ErrNotFound)
	}

	return s.writeAll(entries)
}

func (s *Store) readAll() ([]review.Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open queue file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read queue file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	entries := make([]review.Entry, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(review.CSVHeaders()) {
			continue
		}
		entries = append(entries, fromRecord(rec))
	}
	return entries, nil
}

func (s *Store) writeAll(entries []review.Entry) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "queue-*.csv")
	if err != nil {
		return fmt.Errorf("create temp queue file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(review.CSVHeaders()); err != nil {
		tmp.Close()
		return fmt.Errorf("write queue header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write(toRecord(e)); err != nil {
			tmp.Close()
			return fmt.Errorf("write review entry: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush queue file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp queue file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace queue file: %w", err)
	}
	return nil
}

func toRecord(e review.Entry) []string {
	return []string{
		e.SessionID,
		e.Query,
		e.Location,
		strconv.Itoa(e.UrgencyScore),
		strconv.Itoa(e.CredibilityScore),
		e.Timestamp,
		e.Status,
		e.ReviewerNotes,
	}
}

func fromRecord(rec []string) review.Entry {
	urgency, _ := strconv.Atoi(rec[3])
	credibility, _ := strconv.Atoi(rec[4])
	return review.Entry{
		SessionID:        rec[0],
		Query:            rec[1],
		Location:         rec[2],
		UrgencyScore:     urgency,
		CredibilityScore: credibility,
		Timestamp:        rec[5],
		Status:           rec[6],
		ReviewerNotes:    rec[7],
	}
}
