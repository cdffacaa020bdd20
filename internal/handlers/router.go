package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/security"
)

// RouterDeps carries everything the router mounts
type RouterDeps struct {
	Middleware   *Middleware
	LoginLimiter *security.RateLimiter
	AILimiter    *security.RateLimiter
	Auth         *AuthHandler
	Classrooms   *ClassroomHandler
	WordSets     *WordSetHandler
	Spell        *SpellHandler
	Scenes       *SceneHandler
	Drawings     *DrawingHandler
	Progress     *ProgressHandler
	Students     *StudentHandler
	StaticPath   string
}

// NewRouter builds the full route tree
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Sign-in endpoints are rate limited per client IP
		r.Group(func(r chi.Router) {
			r.Use(deps.LoginLimiter.Middleware)
			r.Post("/auth/register", deps.Auth.Register)
			r.Post("/auth/login", deps.Auth.Login)
			r.Post("/auth/student-login", deps.Auth.StudentLogin)
		})

		r.Get("/auth/google/start", deps.Auth.StartGoogleOAuth)
		r.Get("/auth/google/callback", deps.Auth.GoogleOAuthCallback)
		r.Post("/auth/logout", deps.Auth.Logout)

		// Teacher routes: session cookie plus CSRF on mutations
		r.Group(func(r chi.Router) {
			r.Use(deps.Middleware.RequireTeacher)
			r.Use(deps.Middleware.VerifyCSRF)

			r.Get("/auth/me", deps.Auth.Me)

			r.Route("/classrooms", func(r chi.Router) {
				r.Post("/", deps.Classrooms.Create)
				r.Get("/", deps.Classrooms.List)
				r.Get("/{classroomID}", deps.Classrooms.Roster)
				r.Post("/{classroomID}/students", deps.Classrooms.AddStudent)
				r.Post("/{classroomID}/students/{studentID}/passcode", deps.Classrooms.ResetPasscode)
				r.Delete("/{classroomID}/students/{studentID}", deps.Classrooms.RemoveStudent)
				r.Post("/{classroomID}/invitations", deps.Classrooms.Invite)
				r.Get("/{classroomID}/progress", deps.Progress.ClassroomSummary)
			})

			r.Route("/wordsets", func(r chi.Router) {
				r.Post("/", deps.WordSets.Create)
				r.Get("/", deps.WordSets.List)
				r.Get("/{wordSetID}", deps.WordSets.Get)
				r.Put("/{wordSetID}", deps.WordSets.Update)
				r.Delete("/{wordSetID}", deps.WordSets.Delete)
				r.Post("/{wordSetID}/words", deps.WordSets.AddWord)
				r.Delete("/{wordSetID}/words/{wordID}", deps.WordSets.DeleteWord)
				r.Post("/{wordSetID}/assignments", deps.WordSets.Assign)
				r.Delete("/{wordSetID}/assignments", deps.WordSets.Unassign)
				r.Get("/{wordSetID}/scenes", deps.Scenes.List)
				r.Get("/{wordSetID}/progress/{studentID}", deps.Progress.StudentSummary)
				r.Post("/{wordSetID}/progress/{studentID}/email", deps.Progress.EmailStudentSummary)
			})

			r.Route("/scenes", func(r chi.Router) {
				// Generation calls the image model; throttled per client IP
				r.With(deps.AILimiter.Middleware).Post("/", deps.Scenes.Generate)
				r.Get("/{sceneID}", deps.Scenes.Get)
				r.Delete("/{sceneID}", deps.Scenes.Delete)
				r.Post("/{sceneID}/objects", deps.Scenes.AddObject)
				r.Delete("/{sceneID}/objects/{objectID}", deps.Scenes.RemoveObject)
			})
		})

		// Student routes: Bearer token
		r.Group(func(r chi.Router) {
			r.Use(deps.Middleware.RequireStudent)

			r.Get("/play/wordsets", deps.Students.AssignedSets)
			r.Get("/play/history", deps.Students.History)

			r.Post("/play/sessions", deps.Spell.StartSession)
			r.Post("/play/sessions/{sessionID}/complete", deps.Spell.Complete)
			r.Post("/play/sessions/{sessionID}/words/{wordID}/start", deps.Spell.StartWord)
			r.Post("/play/sessions/{sessionID}/words/{wordID}/place", deps.Spell.Place)
			r.Post("/play/sessions/{sessionID}/words/{wordID}/remove", deps.Spell.Remove)
			r.Post("/play/sessions/{sessionID}/words/{wordID}/reset", deps.Spell.Reset)

			r.Get("/play/scenes/{sceneID}", deps.Scenes.StudentScene)
			r.Get("/play/scenes/{sceneID}/hit", deps.Scenes.HitTest)

			r.With(deps.AILimiter.Middleware).Post("/play/drawings", deps.Drawings.Submit)
		})
	})

	fileServer := http.FileServer(http.Dir(deps.StaticPath))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	return r
}
