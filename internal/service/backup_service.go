package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
)

// BackupData is the portable JSON snapshot of the database. IDs are
// preserved so references survive a round trip between database engines.
type BackupData struct {
	Version     string             `json:"version"`
	ExportedAt  time.Time          `json:"exported_at"`
	Teachers    []TeacherBackup    `json:"teachers"`
	Classrooms  []ClassroomBackup  `json:"classrooms"`
	Students    []StudentBackup    `json:"students"`
	WordSets    []WordSetBackup    `json:"word_sets"`
	Words       []WordBackup       `json:"words"`
	Assignments []AssignmentBackup `json:"assignments"`
	Sessions    []SessionBackup    `json:"sessions"`
	Attempts    []AttemptBackup    `json:"attempts"`
}

type TeacherBackup struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	GoogleID     string `json:"google_id,omitempty"`
	IsAdmin      bool   `json:"is_admin"`
}

type ClassroomBackup struct {
	ID        int64  `json:"id"`
	TeacherID int64  `json:"teacher_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
}

type StudentBackup struct {
	ID           int64  `json:"id"`
	ClassroomID  int64  `json:"classroom_id"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	PasscodeHash string `json:"passcode_hash"`
	AvatarColor  string `json:"avatar_color"`
}

type WordSetBackup struct {
	ID         int64  `json:"id"`
	TeacherID  int64  `json:"teacher_id"`
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}

type WordBackup struct {
	ID        int64  `json:"id"`
	WordSetID int64  `json:"word_set_id"`
	Text      string `json:"text"`
	Hint      string `json:"hint,omitempty"`
	AudioPath string `json:"audio_path,omitempty"`
}

type AssignmentBackup struct {
	WordSetID   int64 `json:"word_set_id"`
	ClassroomID int64 `json:"classroom_id"`
}

type SessionBackup struct {
	ID           int64      `json:"id"`
	StudentID    int64      `json:"student_id"`
	WordSetID    int64      `json:"word_set_id"`
	WordIDs      string     `json:"word_ids"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	WordsTotal   int        `json:"words_total"`
	WordsCorrect int        `json:"words_correct"`
	TotalPoints  int        `json:"total_points"`
}

type AttemptBackup struct {
	SessionID    int64     `json:"session_id"`
	StudentID    int64     `json:"student_id"`
	WordID       int64     `json:"word_id"`
	Spelled      string    `json:"spelled"`
	IsCorrect    bool      `json:"is_correct"`
	DurationMs   int64     `json:"duration_ms"`
	PointsEarned int       `json:"points_earned"`
	AttemptedAt  time.Time `json:"attempted_at"`
}

// BackupService exports and restores the database as portable JSON
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup to outputPath
func (s *BackupService) Export(outputPath string) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	steps := []struct {
		name string
		fn   func(*BackupData) error
	}{
		{"teachers", s.exportTeachers},
		{"classrooms", s.exportClassrooms},
		{"students", s.exportStudents},
		{"word sets", s.exportWordSets},
		{"words", s.exportWords},
		{"assignments", s.exportAssignments},
		{"sessions", s.exportSessions},
		{"attempts", s.exportAttempts},
	}
	for _, step := range steps {
		if err := step.fn(backup); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	log.Info().
		Int("teachers", len(backup.Teachers)).
		Int("classrooms", len(backup.Classrooms)).
		Int("students", len(backup.Students)).
		Int("wordSets", len(backup.WordSets)).
		Int("words", len(backup.Words)).
		Msg("export complete")
	return nil
}

func (s *BackupService) exportTeachers(b *BackupData) error {
	rows, err := s.db.Query("SELECT id, email, name, password_hash, COALESCE(google_id, ''), is_admin FROM teachers ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t TeacherBackup
		if err := rows.Scan(&t.ID, &t.Email, &t.Name, &t.PasswordHash, &t.GoogleID, &t.IsAdmin); err != nil {
			return err
		}
		b.Teachers = append(b.Teachers, t)
	}
	return rows.Err()
}

func (s *BackupService) exportClassrooms(b *BackupData) error {
	rows, err := s.db.Query("SELECT id, teacher_id, name, code FROM classrooms ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c ClassroomBackup
		if err := rows.Scan(&c.ID, &c.TeacherID, &c.Name, &c.Code); err != nil {
			return err
		}
		b.Classrooms = append(b.Classrooms, c)
	}
	return rows.Err()
}

func (s *BackupService) exportStudents(b *BackupData) error {
	rows, err := s.db.Query("SELECT id, classroom_id, username, display_name, passcode_hash, avatar_color FROM students ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var st StudentBackup
		if err := rows.Scan(&st.ID, &st.ClassroomID, &st.Username, &st.DisplayName, &st.PasscodeHash, &st.AvatarColor); err != nil {
			return err
		}
		b.Students = append(b.Students, st)
	}
	return rows.Err()
}

func (s *BackupService) exportWordSets(b *BackupData) error {
	rows, err := s.db.Query("SELECT id, teacher_id, name, difficulty FROM word_sets ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ws WordSetBackup
		if err := rows.Scan(&ws.ID, &ws.TeacherID, &ws.Name, &ws.Difficulty); err != nil {
			return err
		}
		b.WordSets = append(b.WordSets, ws)
	}
	return rows.Err()
}

func (s *BackupService) exportWords(b *BackupData) error {
	rows, err := s.db.Query("SELECT id, word_set_id, text, COALESCE(hint, ''), COALESCE(audio_path, '') FROM words ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var w WordBackup
		if err := rows.Scan(&w.ID, &w.WordSetID, &w.Text, &w.Hint, &w.AudioPath); err != nil {
			return err
		}
		b.Words = append(b.Words, w)
	}
	return rows.Err()
}

func (s *BackupService) exportAssignments(b *BackupData) error {
	rows, err := s.db.Query("SELECT word_set_id, classroom_id FROM word_set_assignments ORDER BY word_set_id, classroom_id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a AssignmentBackup
		if err := rows.Scan(&a.WordSetID, &a.ClassroomID); err != nil {
			return err
		}
		b.Assignments = append(b.Assignments, a)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(b *BackupData) error {
	rows, err := s.db.Query("SELECT id, student_id, word_set_id, COALESCE(word_ids, ''), started_at, completed_at, words_total, words_correct, total_points FROM spell_sessions ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var se SessionBackup
		if err := rows.Scan(&se.ID, &se.StudentID, &se.WordSetID, &se.WordIDs, &se.StartedAt, &se.CompletedAt, &se.WordsTotal, &se.WordsCorrect, &se.TotalPoints); err != nil {
			return err
		}
		b.Sessions = append(b.Sessions, se)
	}
	return rows.Err()
}

func (s *BackupService) exportAttempts(b *BackupData) error {
	rows, err := s.db.Query("SELECT session_id, student_id, word_id, spelled, is_correct, duration_ms, points_earned, attempted_at FROM spell_attempts ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var a AttemptBackup
		if err := rows.Scan(&a.SessionID, &a.StudentID, &a.WordID, &a.Spelled, &a.IsCorrect, &a.DurationMs, &a.PointsEarned, &a.AttemptedAt); err != nil {
			return err
		}
		b.Attempts = append(b.Attempts, a)
	}
	return rows.Err()
}

// Import restores a backup file. Rows with already-taken IDs fail the
// import; restore into an empty database.
func (s *BackupService) Import(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	backup := &BackupData{}
	if err := json.Unmarshal(data, backup); err != nil {
		return fmt.Errorf("failed to parse backup: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Tx.Rollback()

	for _, t := range backup.Teachers {
		googleID := any(t.GoogleID)
		if t.GoogleID == "" {
			googleID = nil
		}
		if _, err := tx.Exec(
			"INSERT INTO teachers (id, email, name, password_hash, google_id, is_admin) VALUES (?, ?, ?, ?, ?, ?)",
			t.ID, t.Email, t.Name, t.PasswordHash, googleID, t.IsAdmin,
		); err != nil {
			return fmt.Errorf("failed to import teacher %d: %w", t.ID, err)
		}
	}
	for _, c := range backup.Classrooms {
		if _, err := tx.Exec(
			"INSERT INTO classrooms (id, teacher_id, name, code) VALUES (?, ?, ?, ?)",
			c.ID, c.TeacherID, c.Name, c.Code,
		); err != nil {
			return fmt.Errorf("failed to import classroom %d: %w", c.ID, err)
		}
	}
	for _, st := range backup.Students {
		if _, err := tx.Exec(
			"INSERT INTO students (id, classroom_id, username, display_name, passcode_hash, avatar_color) VALUES (?, ?, ?, ?, ?, ?)",
			st.ID, st.ClassroomID, st.Username, st.DisplayName, st.PasscodeHash, st.AvatarColor,
		); err != nil {
			return fmt.Errorf("failed to import student %d: %w", st.ID, err)
		}
	}
	for _, ws := range backup.WordSets {
		if _, err := tx.Exec(
			"INSERT INTO word_sets (id, teacher_id, name, difficulty) VALUES (?, ?, ?, ?)",
			ws.ID, ws.TeacherID, ws.Name, ws.Difficulty,
		); err != nil {
			return fmt.Errorf("failed to import word set %d: %w", ws.ID, err)
		}
	}
	for _, w := range backup.Words {
		if _, err := tx.Exec(
			"INSERT INTO words (id, word_set_id, text, hint, audio_path) VALUES (?, ?, ?, ?, ?)",
			w.ID, w.WordSetID, w.Text, w.Hint, w.AudioPath,
		); err != nil {
			return fmt.Errorf("failed to import word %d: %w", w.ID, err)
		}
	}
	for _, a := range backup.Assignments {
		if _, err := tx.Exec(
			"INSERT INTO word_set_assignments (word_set_id, classroom_id) VALUES (?, ?)",
			a.WordSetID, a.ClassroomID,
		); err != nil {
			return fmt.Errorf("failed to import assignment: %w", err)
		}
	}
	for _, se := range backup.Sessions {
		if _, err := tx.Exec(
			"INSERT INTO spell_sessions (id, student_id, word_set_id, word_ids, started_at, completed_at, words_total, words_correct, total_points) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			se.ID, se.StudentID, se.WordSetID, se.WordIDs, se.StartedAt, se.CompletedAt, se.WordsTotal, se.WordsCorrect, se.TotalPoints,
		); err != nil {
			return fmt.Errorf("failed to import session %d: %w", se.ID, err)
		}
	}
	for _, a := range backup.Attempts {
		if _, err := tx.Exec(
			"INSERT INTO spell_attempts (session_id, student_id, word_id, spelled, is_correct, duration_ms, points_earned, attempted_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			a.SessionID, a.StudentID, a.WordID, a.Spelled, a.IsCorrect, a.DurationMs, a.PointsEarned, a.AttemptedAt,
		); err != nil {
			return fmt.Errorf("failed to import attempt: %w", err)
		}
	}

	if err := tx.Tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Info().
		Int("teachers", len(backup.Teachers)).
		Int("students", len(backup.Students)).
		Int("words", len(backup.Words)).
		Msg("import complete")
	return nil
}
