package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func reviewerHandler(t *testing.T, keyHash string) http.Handler {
	t.Helper()
	return ReviewerAuth(keyHash)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestReviewerAuthValidKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	handler := reviewerHandler(t, string(hash))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reviews/IS-1234/status", http.NoBody)
	req.Header.Set("X-API-Key", "secret-key")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReviewerAuthWrongKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	handler := reviewerHandler(t, string(hash))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reviews/IS-1234/status", http.NoBody)
	req.Header.Set("X-API-Key", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestReviewerAuthMissingKey(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	handler := reviewerHandler(t, string(hash))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reviews/IS-1234/status", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestReviewerAuthUnconfigured(t *testing.T) {
	handler := reviewerHandler(t, "")

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/reviews/IS-1234/status", http.NoBody)
	req.Header.Set("X-API-Key", "anything")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}
