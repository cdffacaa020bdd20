package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/audio"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/validation"
)

var (
	ErrWordSetNotFound = errors.New("word set not found")
	ErrNotWordSetOwner = errors.New("word set belongs to another teacher")
	ErrWordRejected    = errors.New("word rejected by content filter")
)

// WordSetService manages vocabulary word sets and their cached audio
type WordSetService struct {
	wordSetRepo   *repository.WordSetRepository
	classroomRepo *repository.ClassroomRepository
	db            *database.DB
	tts           *audio.TTSService
}

// NewWordSetService creates a new word set service
func NewWordSetService(
	wordSetRepo *repository.WordSetRepository,
	classroomRepo *repository.ClassroomRepository,
	db *database.DB,
	tts *audio.TTSService,
) *WordSetService {
	return &WordSetService{
		wordSetRepo:   wordSetRepo,
		classroomRepo: classroomRepo,
		db:            db,
		tts:           tts,
	}
}

// CreateWordSet creates an empty word set
func (s *WordSetService) CreateWordSet(teacherID int64, name string, difficulty int) (*models.WordSet, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateDifficulty(difficulty); err != nil {
		return nil, err
	}
	return s.wordSetRepo.CreateWordSet(teacherID, name, difficulty)
}

// ListAssigned returns the word sets assigned to a classroom. Used for the
// student home screen, so there is no ownership check.
func (s *WordSetService) ListAssigned(classroomID int64) ([]models.WordSet, error) {
	return s.wordSetRepo.GetClassroomWordSets(classroomID)
}

// GetWordSet loads a word set, verifying ownership
func (s *WordSetService) GetWordSet(teacherID, wordSetID int64) (*models.WordSet, error) {
	set, err := s.wordSetRepo.GetWordSetByID(wordSetID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrWordSetNotFound
	}
	if set.TeacherID != teacherID {
		return nil, ErrNotWordSetOwner
	}
	return set, nil
}

// GetWordSetWithWords loads a word set and its words
func (s *WordSetService) GetWordSetWithWords(teacherID, wordSetID int64) (*models.WordSetWithWords, error) {
	set, err := s.GetWordSet(teacherID, wordSetID)
	if err != nil {
		return nil, err
	}
	words, err := s.wordSetRepo.GetWords(wordSetID)
	if err != nil {
		return nil, err
	}
	return &models.WordSetWithWords{WordSet: *set, Words: words}, nil
}

// ListWordSets returns a teacher's word sets
func (s *WordSetService) ListWordSets(teacherID int64) ([]models.WordSet, error) {
	return s.wordSetRepo.GetTeacherWordSets(teacherID)
}

// UpdateWordSet renames a word set or changes its difficulty
func (s *WordSetService) UpdateWordSet(teacherID, wordSetID int64, name string, difficulty int) error {
	if _, err := s.GetWordSet(teacherID, wordSetID); err != nil {
		return err
	}
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if err := validation.ValidateDifficulty(difficulty); err != nil {
		return err
	}
	return s.wordSetRepo.UpdateWordSet(wordSetID, name, difficulty)
}

// DeleteWordSet removes a word set
func (s *WordSetService) DeleteWordSet(teacherID, wordSetID int64) error {
	if _, err := s.GetWordSet(teacherID, wordSetID); err != nil {
		return err
	}
	return s.wordSetRepo.DeleteWordSet(wordSetID)
}

// AddWord validates and screens a word, stores it, and fetches its audio.
// Audio failures do not fail the add; the backfill picks them up later.
func (s *WordSetService) AddWord(teacherID, wordSetID int64, text, hint string) (*models.Word, error) {
	if _, err := s.GetWordSet(teacherID, wordSetID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if err := validation.ValidateWordText(text); err != nil {
		return nil, err
	}

	bad, err := s.db.ValidateWords(strings.Fields(strings.ToLower(text)))
	if err != nil {
		return nil, err
	}
	if len(bad) > 0 {
		return nil, ErrWordRejected
	}

	word, err := s.wordSetRepo.AddWord(wordSetID, text, hint)
	if err != nil {
		return nil, err
	}

	if filename, err := s.tts.EnsureWordAudio(word.ID, word.Text); err != nil {
		log.Warn().Err(err).Str("word", word.Text).Msg("audio generation failed, will backfill")
	} else if err := s.wordSetRepo.UpdateWordAudio(word.ID, filename); err != nil {
		return nil, err
	} else {
		word.AudioPath = filename
	}
	return word, nil
}

// DeleteWord removes a word and its cached audio
func (s *WordSetService) DeleteWord(teacherID, wordSetID, wordID int64) error {
	if _, err := s.GetWordSet(teacherID, wordSetID); err != nil {
		return err
	}
	word, err := s.wordSetRepo.GetWordByID(wordID)
	if err != nil {
		return err
	}
	if word == nil || word.WordSetID != wordSetID {
		return ErrWordSetNotFound
	}
	if word.AudioPath != "" {
		if err := s.tts.DeleteAudioFile(word.AudioPath); err != nil {
			log.Warn().Err(err).Str("file", word.AudioPath).Msg("failed to delete audio file")
		}
	}
	return s.wordSetRepo.DeleteWord(wordID)
}

// Assign links a word set to one of the teacher's classrooms
func (s *WordSetService) Assign(teacherID, wordSetID, classroomID int64) error {
	if _, err := s.GetWordSet(teacherID, wordSetID); err != nil {
		return err
	}
	classroom, err := s.classroomRepo.GetClassroomByID(classroomID)
	if err != nil {
		return err
	}
	if classroom == nil || classroom.TeacherID != teacherID {
		return ErrClassroomNotFound
	}
	return s.wordSetRepo.AssignToClassroom(wordSetID, classroomID)
}

// Unassign removes a word set from a classroom
func (s *WordSetService) Unassign(teacherID, wordSetID, classroomID int64) error {
	if _, err := s.GetWordSet(teacherID, wordSetID); err != nil {
		return err
	}
	return s.wordSetRepo.UnassignFromClassroom(wordSetID, classroomID)
}

// BackfillAudio fetches pronunciations for words that are missing one.
// Run at startup and from the admin endpoint.
func (s *WordSetService) BackfillAudio() (int, error) {
	words, err := s.wordSetRepo.GetWordsMissingAudio()
	if err != nil {
		return 0, err
	}

	generated := 0
	for _, word := range words {
		filename, err := s.tts.EnsureWordAudio(word.ID, word.Text)
		if err != nil {
			log.Warn().Err(err).Str("word", word.Text).Msg("audio backfill failed for word")
			continue
		}
		if err := s.wordSetRepo.UpdateWordAudio(word.ID, filename); err != nil {
			return generated, err
		}
		generated++
	}
	return generated, nil
}

// CleanupAudio deletes cached audio files no word references
func (s *WordSetService) CleanupAudio() (int, error) {
	inUse := make(map[string]bool)

	rows, err := s.db.Query("SELECT COALESCE(audio_path, '') FROM words WHERE audio_path IS NOT NULL AND audio_path != ''")
	if err != nil {
		return 0, fmt.Errorf("failed to list referenced audio: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return 0, err
		}
		inUse[path] = true
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	return s.tts.CleanupOrphans(inUse)
}
