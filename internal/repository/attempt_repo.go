package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

// AttemptRepository handles database operations for spelling sessions,
// attempts and drawings
type AttemptRepository struct {
	db *database.DB
}

// NewAttemptRepository creates a new attempt repository
func NewAttemptRepository(db *database.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// CreateSession starts a new run through a word set. wordIDs records the
// chosen word order so the run survives restarts.
func (r *AttemptRepository) CreateSession(studentID, wordSetID int64, wordIDs string, wordsTotal int) (*models.SpellSession, error) {
	query := "INSERT INTO spell_sessions (student_id, word_set_id, word_ids, words_total) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(query, studentID, wordSetID, wordIDs, wordsTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to create spell session: %w", err)
	}

	return &models.SpellSession{
		ID:         id,
		StudentID:  studentID,
		WordSetID:  wordSetID,
		WordIDs:    wordIDs,
		StartedAt:  time.Now(),
		WordsTotal: wordsTotal,
	}, nil
}

// GetSessionByID retrieves a spelling session
func (r *AttemptRepository) GetSessionByID(id int64) (*models.SpellSession, error) {
	query := `
		SELECT id, student_id, word_set_id, COALESCE(word_ids, ''), started_at, completed_at, words_total, words_correct, total_points
		FROM spell_sessions
		WHERE id = ?
	`
	session := &models.SpellSession{}
	err := r.db.QueryRow(query, id).Scan(
		&session.ID,
		&session.StudentID,
		&session.WordSetID,
		&session.WordIDs,
		&session.StartedAt,
		&session.CompletedAt,
		&session.WordsTotal,
		&session.WordsCorrect,
		&session.TotalPoints,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spell session: %w", err)
	}
	return session, nil
}

// GetOpenSession finds a student's unfinished session for a word set, if any
func (r *AttemptRepository) GetOpenSession(studentID, wordSetID int64) (*models.SpellSession, error) {
	query := `
		SELECT id, student_id, word_set_id, COALESCE(word_ids, ''), started_at, completed_at, words_total, words_correct, total_points
		FROM spell_sessions
		WHERE student_id = ? AND word_set_id = ? AND completed_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`
	session := &models.SpellSession{}
	err := r.db.QueryRow(query, studentID, wordSetID).Scan(
		&session.ID,
		&session.StudentID,
		&session.WordSetID,
		&session.WordIDs,
		&session.StartedAt,
		&session.CompletedAt,
		&session.WordsTotal,
		&session.WordsCorrect,
		&session.TotalPoints,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return session, nil
}

// CompleteSession finalises a session with its totals
func (r *AttemptRepository) CompleteSession(id int64, wordsCorrect, totalPoints int) error {
	query := `
		UPDATE spell_sessions
		SET completed_at = CURRENT_TIMESTAMP, words_correct = ?, total_points = ?
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, wordsCorrect, totalPoints, id); err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// RecordAttempt stores one evaluated spelling
func (r *AttemptRepository) RecordAttempt(a *models.SpellAttempt) (int64, error) {
	query := `
		INSERT INTO spell_attempts (session_id, student_id, word_id, spelled, is_correct, duration_ms, points_earned)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		a.SessionID, a.StudentID, a.WordID, a.Spelled, a.IsCorrect, a.DurationMs, a.PointsEarned,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}
	return id, nil
}

// GetSessionAttempts lists all attempts recorded in one session
func (r *AttemptRepository) GetSessionAttempts(sessionID int64) ([]models.SpellAttempt, error) {
	query := `
		SELECT id, session_id, student_id, word_id, spelled, is_correct, duration_ms, points_earned, attempted_at
		FROM spell_attempts
		WHERE session_id = ?
		ORDER BY attempted_at ASC
	`
	rows, err := r.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.SpellAttempt
	for rows.Next() {
		var a models.SpellAttempt
		if err := rows.Scan(
			&a.ID,
			&a.SessionID,
			&a.StudentID,
			&a.WordID,
			&a.Spelled,
			&a.IsCorrect,
			&a.DurationMs,
			&a.PointsEarned,
			&a.AttemptedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// WordStat aggregates a student's attempts on one word
type WordStat struct {
	WordID   int64
	Text     string
	Attempts int
	Correct  int
}

// SuccessRate returns the fraction of attempts that were correct
func (s WordStat) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// GetWordStats aggregates a student's history per word across a word set
func (r *AttemptRepository) GetWordStats(studentID, wordSetID int64) ([]WordStat, error) {
	query := `
		SELECT w.id, w.text,
			COUNT(a.id),
			COALESCE(SUM(CASE WHEN a.is_correct THEN 1 ELSE 0 END), 0)
		FROM words w
		LEFT JOIN spell_attempts a ON a.word_id = w.id AND a.student_id = ?
		WHERE w.word_set_id = ?
		GROUP BY w.id, w.text
		ORDER BY w.id ASC
	`
	rows, err := r.db.Query(query, studentID, wordSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query word stats: %w", err)
	}
	defer rows.Close()

	var stats []WordStat
	for rows.Next() {
		var s WordStat
		if err := rows.Scan(&s.WordID, &s.Text, &s.Attempts, &s.Correct); err != nil {
			return nil, fmt.Errorf("failed to scan word stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetStudentSessions lists a student's sessions, newest first
func (r *AttemptRepository) GetStudentSessions(studentID int64, limit int) ([]models.SpellSession, error) {
	query := `
		SELECT id, student_id, word_set_id, COALESCE(word_ids, ''), started_at, completed_at, words_total, words_correct, total_points
		FROM spell_sessions
		WHERE student_id = ?
		ORDER BY started_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.SpellSession
	for rows.Next() {
		var s models.SpellSession
		if err := rows.Scan(
			&s.ID,
			&s.StudentID,
			&s.WordSetID,
			&s.WordIDs,
			&s.StartedAt,
			&s.CompletedAt,
			&s.WordsTotal,
			&s.WordsCorrect,
			&s.TotalPoints,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CreateDrawing stores a drawing-based answer
func (r *AttemptRepository) CreateDrawing(d *models.Drawing) (int64, error) {
	query := `
		INSERT INTO drawings (student_id, word_id, image_path, guess, is_match)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, d.StudentID, d.WordID, d.ImagePath, d.Guess, d.IsMatch)
	if err != nil {
		return 0, fmt.Errorf("failed to record drawing: %w", err)
	}
	return id, nil
}
