package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/security"
)

func csrfTestMiddleware(t *testing.T) (*Middleware, *security.CSRFGenerator) {
	t.Helper()
	csrf := security.NewCSRFGenerator("test-secret")
	return NewMiddleware(nil, csrf), csrf
}

func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionContextKey, sessionID))
}

func TestVerifyCSRFAllowsReads(t *testing.T) {
	mw, _ := csrfTestMiddleware(t)
	called := false
	handler := mw.VerifyCSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("GET should pass without a token")
	}
}

func TestVerifyCSRFBlocksMissingToken(t *testing.T) {
	mw, _ := csrfTestMiddleware(t)
	handler := mw.VerifyCSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withSession(httptest.NewRequest(http.MethodPost, "/", nil), "sess-1"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestVerifyCSRFAcceptsValidToken(t *testing.T) {
	mw, csrf := csrfTestMiddleware(t)
	called := false
	handler := mw.VerifyCSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	token, err := csrf.GenerateToken("sess-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := withSession(httptest.NewRequest(http.MethodPost, "/", nil), "sess-1")
	req.Header.Set("X-CSRF-Token", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if !called {
		t.Errorf("valid token rejected, status %d", rec.Code)
	}
}

func TestVerifyCSRFRejectsForeignToken(t *testing.T) {
	mw, csrf := csrfTestMiddleware(t)
	handler := mw.VerifyCSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	token, err := csrf.GenerateToken("someone-else")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := withSession(httptest.NewRequest(http.MethodPost, "/", nil), "sess-1")
	req.Header.Set("X-CSRF-Token", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireStudentMissingToken(t *testing.T) {
	mw, _ := csrfTestMiddleware(t)
	handler := mw.RequireStudent(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, status: http.StatusOK}
	sr.WriteHeader(http.StatusTeapot)
	if sr.status != http.StatusTeapot {
		t.Errorf("recorded status = %d, want %d", sr.status, http.StatusTeapot)
	}
}

func TestGetTeacherFromContextMissing(t *testing.T) {
	if teacher := GetTeacherFromContext(context.Background()); teacher != nil {
		t.Errorf("expected nil teacher, got %+v", teacher)
	}
}
