package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/security"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	TeacherContextKey ContextKey = "teacher"
	StudentContextKey ContextKey = "student"
	SessionContextKey ContextKey = "session"
)

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
	}
}

// RequireTeacher authenticates a teacher from the session cookie
func (m *Middleware) RequireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(security.SessionCookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "not signed in")
			return
		}

		teacher, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.ExpiredSessionCookie(r))
			respondError(w, http.StatusUnauthorized, "session expired")
			return
		}

		ctx := context.WithValue(r.Context(), TeacherContextKey, teacher)
		ctx = context.WithValue(ctx, SessionContextKey, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// VerifyCSRF checks the X-CSRF-Token header on state-changing teacher
// requests. Runs after RequireTeacher.
func (m *Middleware) VerifyCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		sessionID, _ := r.Context().Value(SessionContextKey).(string)
		token := r.Header.Get("X-CSRF-Token")
		if sessionID == "" || !m.csrf.ValidateToken(sessionID, token) {
			respondError(w, http.StatusForbidden, "invalid CSRF token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireStudent authenticates a student from a Bearer token
func (m *Middleware) RequireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, http.StatusUnauthorized, "missing token")
			return
		}

		student, err := m.authService.VerifyStudentToken(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), StudentContextKey, student)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs each request with its duration and status
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("ip", security.ClientIP(r)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// GetTeacherFromContext retrieves the teacher from the request context
func GetTeacherFromContext(ctx context.Context) *models.Teacher {
	teacher, ok := ctx.Value(TeacherContextKey).(*models.Teacher)
	if !ok {
		return nil
	}
	return teacher
}

// GetStudentFromContext retrieves the student from the request context
func GetStudentFromContext(ctx context.Context) *models.Student {
	student, ok := ctx.Value(StudentContextKey).(*models.Student)
	if !ok {
		return nil
	}
	return student
}
