package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

// WordSetRepository handles database operations for word sets and words
type WordSetRepository struct {
	db *database.DB
}

// NewWordSetRepository creates a new word set repository
func NewWordSetRepository(db *database.DB) *WordSetRepository {
	return &WordSetRepository{db: db}
}

// CreateWordSet creates an empty word set
func (r *WordSetRepository) CreateWordSet(teacherID int64, name string, difficulty int) (*models.WordSet, error) {
	query := "INSERT INTO word_sets (teacher_id, name, difficulty) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, teacherID, name, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create word set: %w", err)
	}

	return &models.WordSet{
		ID:         id,
		TeacherID:  teacherID,
		Name:       name,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

// GetWordSetByID retrieves a word set by ID
func (r *WordSetRepository) GetWordSetByID(id int64) (*models.WordSet, error) {
	query := "SELECT id, teacher_id, name, difficulty, created_at, updated_at FROM word_sets WHERE id = ?"
	set := &models.WordSet{}
	err := r.db.QueryRow(query, id).Scan(
		&set.ID,
		&set.TeacherID,
		&set.Name,
		&set.Difficulty,
		&set.CreatedAt,
		&set.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word set: %w", err)
	}
	return set, nil
}

// GetTeacherWordSets retrieves all word sets owned by a teacher
func (r *WordSetRepository) GetTeacherWordSets(teacherID int64) ([]models.WordSet, error) {
	query := `
		SELECT id, teacher_id, name, difficulty, created_at, updated_at
		FROM word_sets
		WHERE teacher_id = ?
		ORDER BY name ASC
	`
	rows, err := r.db.Query(query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query word sets: %w", err)
	}
	defer rows.Close()

	var sets []models.WordSet
	for rows.Next() {
		var s models.WordSet
		if err := rows.Scan(&s.ID, &s.TeacherID, &s.Name, &s.Difficulty, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word set: %w", err)
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}

// UpdateWordSet updates a word set's name and difficulty
func (r *WordSetRepository) UpdateWordSet(id int64, name string, difficulty int) error {
	query := "UPDATE word_sets SET name = ?, difficulty = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, name, difficulty, id); err != nil {
		return fmt.Errorf("failed to update word set: %w", err)
	}
	return nil
}

// DeleteWordSet removes a word set and its words
func (r *WordSetRepository) DeleteWordSet(id int64) error {
	if _, err := r.db.Exec("DELETE FROM word_sets WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete word set: %w", err)
	}
	return nil
}

// AddWord appends a word to a set
func (r *WordSetRepository) AddWord(wordSetID int64, text, hint string) (*models.Word, error) {
	query := "INSERT INTO words (word_set_id, text, hint) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, wordSetID, text, hint)
	if err != nil {
		return nil, fmt.Errorf("failed to add word: %w", err)
	}

	return &models.Word{
		ID:        id,
		WordSetID: wordSetID,
		Text:      text,
		Hint:      hint,
		CreatedAt: time.Now(),
	}, nil
}

// GetWordByID retrieves a single word
func (r *WordSetRepository) GetWordByID(id int64) (*models.Word, error) {
	query := "SELECT id, word_set_id, text, COALESCE(hint, ''), COALESCE(audio_path, ''), created_at FROM words WHERE id = ?"
	word := &models.Word{}
	err := r.db.QueryRow(query, id).Scan(
		&word.ID,
		&word.WordSetID,
		&word.Text,
		&word.Hint,
		&word.AudioPath,
		&word.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return word, nil
}

// GetWords retrieves all words in a set
func (r *WordSetRepository) GetWords(wordSetID int64) ([]models.Word, error) {
	query := `
		SELECT id, word_set_id, text, COALESCE(hint, ''), COALESCE(audio_path, ''), created_at
		FROM words
		WHERE word_set_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, wordSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.WordSetID, &w.Text, &w.Hint, &w.AudioPath, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// DeleteWord removes a word from its set
func (r *WordSetRepository) DeleteWord(id int64) error {
	if _, err := r.db.Exec("DELETE FROM words WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return nil
}

// UpdateWordAudio records the cached audio file for a word
func (r *WordSetRepository) UpdateWordAudio(id int64, audioPath string) error {
	if _, err := r.db.Exec("UPDATE words SET audio_path = ? WHERE id = ?", audioPath, id); err != nil {
		return fmt.Errorf("failed to update word audio: %w", err)
	}
	return nil
}

// GetWordsMissingAudio lists words that have no cached audio yet
func (r *WordSetRepository) GetWordsMissingAudio() ([]models.Word, error) {
	query := `
		SELECT id, word_set_id, text, COALESCE(hint, ''), COALESCE(audio_path, ''), created_at
		FROM words
		WHERE audio_path IS NULL OR audio_path = ''
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query words missing audio: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.WordSetID, &w.Text, &w.Hint, &w.AudioPath, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// AssignToClassroom links a word set to a classroom
func (r *WordSetRepository) AssignToClassroom(wordSetID, classroomID int64) error {
	query := "INSERT INTO word_set_assignments (word_set_id, classroom_id) VALUES (?, ?)"
	if _, err := r.db.Exec(query, wordSetID, classroomID); err != nil {
		return fmt.Errorf("failed to assign word set: %w", err)
	}
	return nil
}

// UnassignFromClassroom removes a word set from a classroom
func (r *WordSetRepository) UnassignFromClassroom(wordSetID, classroomID int64) error {
	query := "DELETE FROM word_set_assignments WHERE word_set_id = ? AND classroom_id = ?"
	if _, err := r.db.Exec(query, wordSetID, classroomID); err != nil {
		return fmt.Errorf("failed to unassign word set: %w", err)
	}
	return nil
}

// GetClassroomWordSets retrieves the word sets assigned to a classroom
func (r *WordSetRepository) GetClassroomWordSets(classroomID int64) ([]models.WordSet, error) {
	query := `
		SELECT ws.id, ws.teacher_id, ws.name, ws.difficulty, ws.created_at, ws.updated_at
		FROM word_sets ws
		JOIN word_set_assignments a ON a.word_set_id = ws.id
		WHERE a.classroom_id = ?
		ORDER BY ws.name ASC
	`
	rows, err := r.db.Query(query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned word sets: %w", err)
	}
	defer rows.Close()

	var sets []models.WordSet
	for rows.Next() {
		var s models.WordSet
		if err := rows.Scan(&s.ID, &s.TeacherID, &s.Name, &s.Difficulty, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word set: %w", err)
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}
