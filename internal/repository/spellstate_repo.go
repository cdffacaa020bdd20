package repository

import (
	"database/sql"
	"fmt"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
)

// SpellStateRepository persists in-flight letter games as JSON snapshots so
// a student can resume after a restart or a dropped connection
type SpellStateRepository struct {
	db *database.DB
}

// NewSpellStateRepository creates a new spell state repository
func NewSpellStateRepository(db *database.DB) *SpellStateRepository {
	return &SpellStateRepository{db: db}
}

// SaveState upserts the snapshot for one word within a session. Delete plus
// insert inside a transaction keeps the SQL portable across dialects.
func (r *SpellStateRepository) SaveState(sessionID, wordID int64, snapshot string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM spell_state WHERE session_id = ? AND word_id = ?", sessionID, wordID); err != nil {
		return fmt.Errorf("failed to clear previous state: %w", err)
	}
	query := "INSERT INTO spell_state (session_id, word_id, snapshot, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)"
	if _, err := tx.Exec(query, sessionID, wordID, snapshot); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

// LoadState returns the stored snapshot, or "" when none exists
func (r *SpellStateRepository) LoadState(sessionID, wordID int64) (string, error) {
	var snapshot string
	err := r.db.QueryRow(
		"SELECT snapshot FROM spell_state WHERE session_id = ? AND word_id = ?",
		sessionID, wordID,
	).Scan(&snapshot)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load state: %w", err)
	}
	return snapshot, nil
}

// DeleteState removes the snapshot once a word is finished
func (r *SpellStateRepository) DeleteState(sessionID, wordID int64) error {
	if _, err := r.db.Exec("DELETE FROM spell_state WHERE session_id = ? AND word_id = ?", sessionID, wordID); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

// DeleteSessionStates clears all snapshots belonging to a session
func (r *SpellStateRepository) DeleteSessionStates(sessionID int64) error {
	if _, err := r.db.Exec("DELETE FROM spell_state WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session states: %w", err)
	}
	return nil
}
