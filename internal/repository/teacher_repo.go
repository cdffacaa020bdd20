package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

// TeacherRepository handles database operations for teacher accounts and sessions
type TeacherRepository struct {
	db *database.DB
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *database.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// CreateTeacher inserts a new teacher account. The first account created
// becomes the admin.
func (r *TeacherRepository) CreateTeacher(email, passwordHash, name string) (*models.Teacher, error) {
	var teacherCount int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM teachers").Scan(&teacherCount); err != nil {
		return nil, fmt.Errorf("failed to count teachers: %w", err)
	}
	isAdmin := teacherCount == 0

	query := `
		INSERT INTO teachers (email, password_hash, name, is_admin)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	return &models.Teacher{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

// GetTeacherByEmail retrieves a teacher by email address
func (r *TeacherRepository) GetTeacherByEmail(email string) (*models.Teacher, error) {
	query := `
		SELECT id, email, password_hash, name, COALESCE(google_id, ''), is_admin, created_at, updated_at
		FROM teachers
		WHERE email = ?
	`
	return r.scanTeacher(r.db.QueryRow(query, email))
}

// GetTeacherByID retrieves a teacher by ID
func (r *TeacherRepository) GetTeacherByID(id int64) (*models.Teacher, error) {
	query := `
		SELECT id, email, password_hash, name, COALESCE(google_id, ''), is_admin, created_at, updated_at
		FROM teachers
		WHERE id = ?
	`
	return r.scanTeacher(r.db.QueryRow(query, id))
}

// GetTeacherByGoogleID retrieves a teacher by their linked Google account
func (r *TeacherRepository) GetTeacherByGoogleID(googleID string) (*models.Teacher, error) {
	query := `
		SELECT id, email, password_hash, name, COALESCE(google_id, ''), is_admin, created_at, updated_at
		FROM teachers
		WHERE google_id = ?
	`
	return r.scanTeacher(r.db.QueryRow(query, googleID))
}

func (r *TeacherRepository) scanTeacher(row *sql.Row) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	err := row.Scan(
		&teacher.ID,
		&teacher.Email,
		&teacher.PasswordHash,
		&teacher.Name,
		&teacher.GoogleID,
		&teacher.IsAdmin,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return teacher, nil
}

// LinkGoogleID attaches a Google account to an existing teacher
func (r *TeacherRepository) LinkGoogleID(teacherID int64, googleID string) error {
	query := "UPDATE teachers SET google_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, googleID, teacherID); err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	return nil
}

// UpdatePassword replaces a teacher's password hash
func (r *TeacherRepository) UpdatePassword(teacherID int64, passwordHash string) error {
	query := "UPDATE teachers SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, passwordHash, teacherID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateSession stores a new login session
func (r *TeacherRepository) CreateSession(session *models.Session) error {
	query := "INSERT INTO teacher_sessions (id, teacher_id, created_at, expires_at) VALUES (?, ?, ?, ?)"
	if _, err := r.db.Exec(query, session.ID, session.TeacherID, session.CreatedAt, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID
func (r *TeacherRepository) GetSession(sessionID string) (*models.Session, error) {
	query := "SELECT id, teacher_id, created_at, expires_at FROM teacher_sessions WHERE id = ?"
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.TeacherID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session (logout)
func (r *TeacherRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM teacher_sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions clears out sessions past their expiry
func (r *TeacherRepository) DeleteExpiredSessions() error {
	if _, err := r.db.Exec("DELETE FROM teacher_sessions WHERE expires_at < ?", time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
