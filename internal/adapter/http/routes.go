package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/infoshield/infoshield/internal/adapter/ws"
	"github.com/infoshield/infoshield/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router.
// reviewerKeyHash guards the reviewer decision endpoint.
func MountRoutes(r chi.Router, h *Handlers, hub *ws.Hub, reviewerKeyHash string) {
	r.Get("/health", h.HandleHealth)

	if hub != nil {
		r.Get("/ws", hub.HandleWS)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		r.Post("/verify", h.HandleVerify)

		r.Get("/reviews", h.HandleListReviews)
		r.With(middleware.ReviewerAuth(reviewerKeyHash)).
			Patch("/reviews/{sessionID}/status", h.HandleUpdateReviewStatus)
	})
}
