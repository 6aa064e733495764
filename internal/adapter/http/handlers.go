package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/infoshield/infoshield/internal/domain/review"
	"github.com/infoshield/infoshield/internal/port/messagequeue"
	"github.com/infoshield/infoshield/internal/service"
)

// maxVerifyBody caps the verify request body size.
const maxVerifyBody = 1 << 16

// Handlers holds the services behind the HTTP API.
type Handlers struct {
	Verifications *service.VerificationService
	Reviews       *service.ReviewService
	Queue         messagequeue.Queue // optional, reported by /health
}

type verifyRequest struct {
	Query string `json:"query"`
}

// HandleVerify handles POST /api/v1/verify.
func (h *Handlers) HandleVerify(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[verifyRequest](w, r, maxVerifyBody)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.Verifications.Verify(r.Context(), req.Query)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleListReviews handles GET /api/v1/reviews.
// The optional ?status= filter defaults to pending; "all" lists everything.
func (h *Handlers) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Reviews.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, err, "reviews not found")
		return
	}
	if entries == nil {
		entries = []review.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"reviews": entries,
		"count":   len(entries),
	})
}

type updateReviewRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// HandleUpdateReviewStatus handles PATCH /api/v1/reviews/{sessionID}/status.
func (h *Handlers) HandleUpdateReviewStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := urlParam(r, "sessionID")

	req, ok := readJSON[updateReviewRequest](w, r, maxVerifyBody)
	if !ok {
		return
	}
	if !requireField(w, req.Status, "status") {
		return
	}

	if err := h.Reviews.UpdateStatus(r.Context(), sessionID, req.Status, req.Notes); err != nil {
		writeDomainError(w, err, "review entry not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Updated %s to status: %s", sessionID, req.Status),
	})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if h.Verifications != nil && h.Verifications.Degraded() {
		status = "degraded"
	}

	natsConnected := false
	if h.Queue != nil {
		natsConnected = h.Queue.IsConnected()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": status,
		"nats":   natsConnected,
	})
}
