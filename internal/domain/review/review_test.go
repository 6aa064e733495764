package review

import (
	"strings"
	"testing"
)

func TestNewEntry(t *testing.T) {
	e := NewEntry("Is there flooding in Chennai?", "Chennai", 7, 35)

	if !strings.HasPrefix(e.SessionID, "IS-") {
		t.Errorf("expected IS- prefix, got %s", e.SessionID)
	}
	if len(e.SessionID) != len("IS-")+8 {
		t.Errorf("expected 8 hex chars after prefix, got %s", e.SessionID)
	}
	if e.Status != StatusPending {
		t.Errorf("expected pending status, got %s", e.Status)
	}
	if e.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
	if e.UrgencyScore != 7 || e.CredibilityScore != 35 {
		t.Errorf("unexpected scores: %d/%d", e.UrgencyScore, e.CredibilityScore)
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := NewSessionID()
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusVerified, StatusRejected, StatusNeedsMoreInfo} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []string{"", "all", "done", "PENDING"} {
		if ValidStatus(s) {
			t.Errorf("expected %s to be invalid", s)
		}
	}
}

func TestEstimateReviewTime(t *testing.T) {
	tests := []struct {
		urgency int
		want    string
	}{
		{10, "within 15 minutes"},
		{8, "within 15 minutes"},
		{7, "within 1 hour"},
		{5, "within 1 hour"},
		{4, "within 24 hours"},
		{1, "within 24 hours"},
	}
	for _, tt := range tests {
		if got := EstimateReviewTime(tt.urgency); got != tt.want {
			t.Errorf("EstimateReviewTime(%d) = %s, want %s", tt.urgency, got, tt.want)
		}
	}
}

func TestCSVHeaders(t *testing.T) {
	h := CSVHeaders()
	if len(h) != 8 {
		t.Fatalf("expected 8 columns, got %d", len(h))
	}
	if h[0] != "session_id" || h[7] != "reviewer_notes" {
		t.Errorf("unexpected header order: %v", h)
	}
}
