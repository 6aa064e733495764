// Package review defines the human-review queue entry and its lifecycle.
// Low-credibility verifications are parked here until a human expert
// confirms or rejects them.
package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry statuses.
const (
	StatusPending       = "pending"
	StatusVerified      = "verified"
	StatusRejected      = "rejected"
	StatusNeedsMoreInfo = "needs_more_info"
)

// FilterAll lists entries regardless of status.
const FilterAll = "all"

// Entry is a query parked for human verification.
type Entry struct {
	SessionID        string `json:"session_id"`
	Query            string `json:"query"`
	Location         string `json:"location"`
	UrgencyScore     int    `json:"urgency_score"`
	CredibilityScore int    `json:"credibility_score"`
	Timestamp        string `json:"timestamp"`
	Status           string `json:"status"`
	ReviewerNotes    string `json:"reviewer_notes"`
}

// CSVHeaders is the column order used by the flat-file queue.
func CSVHeaders() []string {
	return []string{
		"session_id", "query", "location", "urgency_score",
		"credibility_score", "timestamp", "status", "reviewer_notes",
	}
}

// NewEntry builds a pending entry with a fresh session ID and the
// current UTC timestamp.
func NewEntry(query, location string, urgencyScore, credibilityScore int) Entry {
	return Entry{
		SessionID:        NewSessionID(),
		Query:            query,
		Location:         location,
		UrgencyScore:     urgencyScore,
		CredibilityScore: credibilityScore,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Status:           StatusPending,
	}
}

// NewSessionID returns a reference ID of the form "IS-" plus the first
// eight hex characters of a random UUID.
func NewSessionID() string {
	u := uuid.New()
	return fmt.Sprintf("IS-%x", u[:4])
}

// ValidStatus reports whether s is an accepted review status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected, StatusNeedsMoreInfo:
		return true
	}
	return false
}

// EstimateReviewTime maps urgency to a human-readable review SLA.
func EstimateReviewTime(urgencyScore int) string {
	switch {
	case urgencyScore >= 8:
		return "within 15 minutes"
	case urgencyScore >= 5:
		return "within 1 hour"
	default:
		return "within 24 hours"
	}
}
