package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/ai"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/audio"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/config"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/handlers"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/security"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

func main() {
	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	log.Info().Str("type", cfg.DatabaseType).Msg("database connected")

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := db.SeedBadWords(); err != nil {
		log.Warn().Err(err).Msg("failed to seed bad words filter")
	}

	// Generated assets live under the static root
	audioDir := cfg.TTSCachePath
	sceneDir := filepath.Join(cfg.StaticFilesPath, "scenes")
	drawingDir := filepath.Join(cfg.StaticFilesPath, "drawings")
	for _, dir := range []string{audioDir, sceneDir, drawingDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("failed to create asset directory")
		}
	}

	teacherRepo := repository.NewTeacherRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	wordSetRepo := repository.NewWordSetRepository(db)
	sceneRepo := repository.NewSceneRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	stateRepo := repository.NewSpellStateRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiry)
	csrf := security.NewCSRFGenerator(cfg.JWTSecret)
	ttsService := audio.NewTTSService(audioDir)
	aiClient := ai.NewClient(
		&http.Client{Timeout: cfg.AITimeout},
		cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIVisionModel, cfg.AIImageModel,
		log.Logger,
	)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.EmailFromAddress, cfg.AppBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email service")
	}

	authService := service.NewAuthService(teacherRepo, classroomRepo, studentRepo, tokens, cfg.SessionDuration)
	classroomService := service.NewClassroomService(classroomRepo, studentRepo, invitationRepo, teacherRepo, db, emailService)
	wordSetService := service.NewWordSetService(wordSetRepo, classroomRepo, db, ttsService)
	spellService := service.NewSpellService(attemptRepo, stateRepo, wordSetRepo)
	sceneService := service.NewSceneService(sceneRepo, wordSetRepo, aiClient, sceneDir)
	drawingService := service.NewDrawingService(attemptRepo, wordSetRepo, aiClient, drawingDir)
	progressService := service.NewProgressService(attemptRepo, studentRepo, classroomRepo, wordSetRepo, emailService)

	if n, err := wordSetService.BackfillAudio(); err != nil {
		log.Warn().Err(err).Msg("audio backfill failed")
	} else if n > 0 {
		log.Info().Int("count", n).Msg("backfilled word audio")
	}
	if n, err := wordSetService.CleanupAudio(); err != nil {
		log.Warn().Err(err).Msg("audio cleanup failed")
	} else if n > 0 {
		log.Info().Int("count", n).Msg("removed orphaned audio files")
	}

	mw := handlers.NewMiddleware(authService, csrf)
	router := handlers.NewRouter(handlers.RouterDeps{
		Middleware:   mw,
		LoginLimiter: security.NewRateLimiter(10, time.Minute),
		AILimiter:    security.NewRateLimiter(20, time.Minute),
		Auth:         handlers.NewAuthHandler(authService, csrf, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL),
		Classrooms:   handlers.NewClassroomHandler(classroomService),
		WordSets:     handlers.NewWordSetHandler(wordSetService),
		Spell:        handlers.NewSpellHandler(spellService),
		Scenes:       handlers.NewSceneHandler(sceneService),
		Drawings:     handlers.NewDrawingHandler(drawingService),
		Progress:     handlers.NewProgressHandler(progressService),
		Students:     handlers.NewStudentHandler(wordSetService, spellService),
		StaticPath:   cfg.StaticFilesPath,
	})

	go cleanupExpiredSessions(authService)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // scene generation waits on the image model
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// cleanupExpiredSessions periodically removes expired teacher sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Error().Err(err).Msg("failed to clean up expired sessions")
		}
	}
}
