package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dojo/internal/auth"
)

func protected(t *testing.T, secret string) http.Handler {
	t.Helper()
	return JWTAuth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestJWTAuthAcceptsSessionToken(t *testing.T) {
	iss := auth.NewIssuer("dev")
	token, err := iss.IssueSessionToken("u1", "a@b.com", "student", time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected(t, "dev").ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuthRejectsResetScopedToken(t *testing.T) {
	iss := auth.NewIssuer("dev")
	token, err := iss.IssueResetToken("u1")
	if err != nil {
		t.Fatalf("IssueResetToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protected(t, "dev").ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for reset-scoped token, got %d", w.Code)
	}
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	protected(t, "dev").ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	iss := auth.NewIssuer("dev")
	token, _ := iss.IssueSessionToken("u1", "a@b.com", "coach", time.Hour)

	h := JWTAuth("dev")(RequireRole("superadmin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for coach on superadmin route, got %d", w.Code)
	}
}
