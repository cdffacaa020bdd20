package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/security"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthHandler serves teacher and student sign-in
type AuthHandler struct {
	authService     *service.AuthService
	csrf            *security.CSRFGenerator
	oauthConfig     *oauth2.Config
	oauthRedirectTo string
}

// NewAuthHandler creates a new auth handler. redirectBaseURL overrides the
// host used in the OAuth callback URL; leave it empty to derive it from the
// request.
func NewAuthHandler(authService *service.AuthService, csrf *security.CSRFGenerator, googleClientID, googleClientSecret, redirectBaseURL string) *AuthHandler {
	var cfg *oauth2.Config
	if googleClientID != "" && googleClientSecret != "" {
		cfg = &oauth2.Config{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			Endpoint:     googleEndpoint,
			Scopes:       []string{"openid", "email", "profile"},
		}
	}
	return &AuthHandler{
		authService:     authService,
		csrf:            csrf,
		oauthConfig:     cfg,
		oauthRedirectTo: redirectBaseURL,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a teacher account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	teacher, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTeacherView(teacher))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Teacher   teacherView `json:"teacher"`
	CSRFToken string      `json:"csrfToken"`
}

// Login signs a teacher in and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, teacher, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	csrfToken, err := h.csrf.GenerateToken(session.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate CSRF token")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, security.SessionCookie(r, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, loginResponse{
		Teacher:   newTeacherView(teacher),
		CSRFToken: csrfToken,
	})
}

// Logout ends the teacher session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondServiceError(w, err)
			return
		}
	}
	http.SetCookie(w, security.ExpiredSessionCookie(r))
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the signed-in teacher with a fresh CSRF token
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	if teacher == nil {
		respondError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	sessionID, _ := r.Context().Value(SessionContextKey).(string)
	csrfToken, err := h.csrf.GenerateToken(sessionID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate CSRF token")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{
		Teacher:   newTeacherView(teacher),
		CSRFToken: csrfToken,
	})
}

type studentLoginRequest struct {
	ClassroomCode string `json:"classroomCode"`
	Username      string `json:"username"`
	Passcode      string `json:"passcode"`
}

type studentLoginResponse struct {
	Token   string      `json:"token"`
	Student studentView `json:"student"`
}

// StudentLogin signs a student in with classroom code, username and passcode
func (h *AuthHandler) StudentLogin(w http.ResponseWriter, r *http.Request) {
	var req studentLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, student, err := h.authService.StudentLogin(req.ClassroomCode, req.Username, req.Passcode)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, studentLoginResponse{
		Token:   token,
		Student: newStudentView(student),
	})
}

// StartGoogleOAuth redirects to Google's consent screen
func (h *AuthHandler) StartGoogleOAuth(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		respondError(w, http.StatusBadRequest, "Google sign-in is not configured")
		return
	}

	state := security.GenerateSessionID()
	h.setTempCookie(w, r, "oauth_state", state, 10*time.Minute)

	config := *h.oauthConfig
	config.RedirectURL = h.oauthRedirectURL(r)
	http.Redirect(w, r, config.AuthCodeURL(state, oauth2.AccessTypeOnline), http.StatusFound)
}

// GoogleOAuthCallback completes the Google sign-in
func (h *AuthHandler) GoogleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if h.oauthConfig == nil {
		respondError(w, http.StatusBadRequest, "Google sign-in is not configured")
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "invalid OAuth state")
		return
	}
	h.clearTempCookie(w, r, "oauth_state")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	config := *h.oauthConfig
	config.RedirectURL = h.oauthRedirectURL(r)
	token, err := config.Exchange(ctx, code)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to exchange OAuth code")
		return
	}

	info, err := fetchGoogleUser(ctx, token)
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	session, _, err := h.authService.LoginWithGoogle(info.ID, info.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.SessionCookie(r, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch Google user info")
	}

	info := &googleUserInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("failed to parse Google user info")
	}
	return info, nil
}

func (h *AuthHandler) oauthRedirectURL(r *http.Request) string {
	baseURL := strings.TrimSpace(h.oauthRedirectTo)
	if baseURL == "" {
		scheme := "http"
		if security.IsSecureRequest(r) {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return strings.TrimRight(baseURL, "/") + "/api/auth/google/callback"
}

func (h *AuthHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

func (h *AuthHandler) clearTempCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
