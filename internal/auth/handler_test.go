package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(newTestService(t, "correct horse battery staple"), zap.NewNop())
}

func postSession(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/auth/session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.handleCreateSession(rec, req)
	return rec
}

func problemDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var problem map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	detail, _ := problem["detail"].(string)
	return detail
}

func TestHandleCreateSession(t *testing.T) {
	h := newTestHandler(t)

	rec := postSession(t, h, `{"passphrase":"correct horse battery staple"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var session SessionToken
	if err := json.NewDecoder(rec.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if _, err := h.service.Tokens().ValidateToken(session.Token); err != nil {
		t.Errorf("issued token does not validate: %v", err)
	}
}

func TestHandleCreateSession_WrongPassphrase(t *testing.T) {
	h := newTestHandler(t)

	rec := postSession(t, h, `{"passphrase":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	if detail := problemDetail(t, rec); detail != "invalid passphrase" {
		t.Errorf("detail = %q, want %q", detail, "invalid passphrase")
	}
}

func TestHandleCreateSession_BadBody(t *testing.T) {
	h := newTestHandler(t)

	rec := postSession(t, h, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := problemDetail(t, rec); detail != "invalid request body" {
		t.Errorf("detail = %q, want %q", detail, "invalid request body")
	}
}

func TestHandleCreateSession_MissingPassphrase(t *testing.T) {
	h := newTestHandler(t)

	rec := postSession(t, h, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if detail := problemDetail(t, rec); detail != "passphrase is required" {
		t.Errorf("detail = %q, want %q", detail, "passphrase is required")
	}
}

func TestHandlerRegisterRoutes(t *testing.T) {
	h := newTestHandler(t)
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	req := httptest.NewRequest("POST", "/api/v1/auth/session",
		strings.NewReader(`{"passphrase":"correct horse battery staple"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	// The session endpoint only accepts POST.
	req = httptest.NewRequest("GET", "/api/v1/auth/session", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}

func TestHandlerMiddleware(t *testing.T) {
	h := newTestHandler(t)
	mw := h.Middleware()
	if mw == nil {
		t.Fatal("expected non-nil middleware")
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called without a token")
	}))

	req := httptest.NewRequest("GET", "/api/v1/guard/session", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
