package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/ai"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/game"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/validation"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired session", service.ErrSessionExpired, http.StatusUnauthorized},
		{"not classroom owner", service.ErrNotClassroomOwner, http.StatusForbidden},
		{"not session owner", service.ErrNotSessionOwner, http.StatusForbidden},
		{"word set missing", service.ErrWordSetNotFound, http.StatusNotFound},
		{"word not in session", service.ErrWordNotInSession, http.StatusNotFound},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"empty word set", service.ErrEmptyWordSet, http.StatusBadRequest},
		{"illegal move", game.ErrInvalidOperation, http.StatusBadRequest},
		{"wrapped illegal move", errors.Join(errors.New("context"), game.ErrInvalidOperation), http.StatusBadRequest},
		{"validation error", validation.ValidationError{Field: "name", Message: "too short"}, http.StatusBadRequest},
		{"ai rate limited", ai.ErrRateLimited, http.StatusTooManyRequests},
		{"ai upstream", ai.ErrUpstream, http.StatusBadGateway},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, errors.New("pq: connection refused"))
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("internal error detail leaked to the client: %s", rec.Body.String())
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","bogus":1}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(req, &dst); err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestPathID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("classroomID", "42")
	rctx.URLParams.Add("studentID", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	id, err := pathID(req, "classroomID")
	if err != nil || id != 42 {
		t.Errorf("pathID = (%d, %v), want (42, nil)", id, err)
	}
	if _, err := pathID(req, "studentID"); err == nil {
		t.Error("expected an error for a non-numeric parameter")
	}
}
