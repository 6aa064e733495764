package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const headerAPIKey = "X-API-Key"

// ReviewerAuth returns middleware that guards reviewer endpoints with a
// shared API key. keyHash is the bcrypt hash of the key, produced by
// the hash-key CLI command. An empty hash disables the endpoints.
func ReviewerAuth(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				slog.Warn("reviewer endpoint called but no reviewer key is configured")
				writeAuthError(w, http.StatusForbidden, "reviewer access is not configured")
				return
			}

			key := r.Header.Get(headerAPIKey)
			if key == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing API key")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
