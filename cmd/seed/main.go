// Command seed bootstraps a fresh deployment: it creates a teacher account
// and a handful of starter word sets, then fills in any missing word audio.
// Running it again is safe; existing accounts and sets are left alone.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/audio"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/config"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

type starterWord struct {
	text string
	hint string
}

type starterSet struct {
	name       string
	difficulty int
	words      []starterWord
}

var starterSets = []starterSet{
	{
		name:       "Animals",
		difficulty: 1,
		words: []starterWord{
			{"cat", "A small pet that purrs"},
			{"dog", "A loyal pet that barks"},
			{"fish", "It swims and has fins"},
			{"bird", "It has feathers and can fly"},
			{"frog", "A green jumper that says ribbit"},
			{"horse", "You can ride it"},
		},
	},
	{
		name:       "At School",
		difficulty: 2,
		words: []starterWord{
			{"pencil", "You write with it"},
			{"teacher", "The grown-up who helps you learn"},
			{"library", "A quiet room full of books"},
			{"playground", "Where you play at break time"},
			{"homework", "Schoolwork you do at home"},
		},
	},
	{
		name:       "Weather",
		difficulty: 3,
		words: []starterWord{
			{"sunshine", "Bright light on a clear day"},
			{"thunder", "The loud rumble after lightning"},
			{"rainbow", "Seven colours across the sky"},
			{"blizzard", "A heavy snowstorm"},
			{"temperature", "How hot or cold it is"},
		},
	},
}

func main() {
	email := flag.String("email", "", "teacher account email (required)")
	password := flag.String("password", "", "teacher account password (required for a new account)")
	name := flag.String("name", "Teacher", "teacher display name")
	flag.Parse()

	cfg := config.Load()
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -email teacher@example.com [-password secret] [-name Name]")
		os.Exit(1)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := db.SeedBadWords(); err != nil {
		log.Fatal().Err(err).Msg("failed to seed bad words filter")
	}

	if err := os.MkdirAll(cfg.TTSCachePath, 0755); err != nil {
		log.Fatal().Err(err).Msg("failed to create audio directory")
	}

	teacherRepo := repository.NewTeacherRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	wordSetRepo := repository.NewWordSetRepository(db)

	authService := service.NewAuthService(teacherRepo, classroomRepo, studentRepo, nil, 0)
	wordSetService := service.NewWordSetService(wordSetRepo, classroomRepo, db, audio.NewTTSService(cfg.TTSCachePath))

	teacher, err := ensureTeacher(authService, teacherRepo, *email, *password, *name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create teacher account")
	}

	existing, err := wordSetService.ListWordSets(teacher.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list word sets")
	}
	have := make(map[string]bool, len(existing))
	for _, ws := range existing {
		have[ws.Name] = true
	}

	created := 0
	for _, set := range starterSets {
		if have[set.name] {
			log.Info().Str("set", set.name).Msg("word set already present, skipping")
			continue
		}
		ws, err := wordSetService.CreateWordSet(teacher.ID, set.name, set.difficulty)
		if err != nil {
			log.Fatal().Err(err).Str("set", set.name).Msg("failed to create word set")
		}
		for _, w := range set.words {
			if _, err := wordSetService.AddWord(teacher.ID, ws.ID, w.text, w.hint); err != nil {
				log.Fatal().Err(err).Str("word", w.text).Msg("failed to add word")
			}
		}
		log.Info().Str("set", set.name).Int("words", len(set.words)).Msg("word set created")
		created++
	}

	if n, err := wordSetService.BackfillAudio(); err != nil {
		log.Warn().Err(err).Msg("audio backfill failed")
	} else if n > 0 {
		log.Info().Int("count", n).Msg("backfilled word audio")
	}

	log.Info().Str("teacher", teacher.Email).Int("setsCreated", created).Msg("seed complete")
}

// ensureTeacher registers the account or returns the existing one
func ensureTeacher(authService *service.AuthService, teacherRepo *repository.TeacherRepository, email, password, name string) (*models.Teacher, error) {
	teacher, err := authService.Register(email, password, name)
	if err == nil {
		log.Info().Str("email", email).Msg("teacher account created")
		return teacher, nil
	}
	if !errors.Is(err, service.ErrEmailTaken) {
		return nil, err
	}
	log.Info().Str("email", email).Msg("teacher account already exists")
	return teacherRepo.GetTeacherByEmail(email)
}
