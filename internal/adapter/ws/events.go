package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventVerificationStage = "verification.stage"
	EventVerificationDone  = "verification.done"
	EventReviewFlagged     = "review.flagged"
	EventReviewUpdated     = "review.updated"
)

// VerificationStageEvent is broadcast as a query moves through the
// pipeline stages.
type VerificationStageEvent struct {
	Query   string `json:"query"`
	Stage   string `json:"stage"`
	Message string `json:"message,omitempty"`
}

// VerificationDoneEvent is broadcast when a verification completes.
type VerificationDoneEvent struct {
	Query            string `json:"query"`
	CredibilityScore *int   `json:"credibility_score,omitempty"`
	Blocked          bool   `json:"blocked"`
	ReviewSessionID  string `json:"review_session_id,omitempty"`
}

// ReviewFlaggedEvent is broadcast when a query is parked for human review.
type ReviewFlaggedEvent struct {
	SessionID        string `json:"session_id"`
	Query            string `json:"query"`
	UrgencyScore     int    `json:"urgency_score"`
	CredibilityScore int    `json:"credibility_score"`
}

// ReviewUpdatedEvent is broadcast when a reviewer changes an entry's status.
type ReviewUpdatedEvent struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// BroadcastEvent marshals a typed event and broadcasts it to all clients.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
