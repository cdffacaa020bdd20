package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *database.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *database.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// CreateStudent creates a new student profile in a classroom
func (r *StudentRepository) CreateStudent(classroomID int64, username, displayName, passcodeHash, avatarColor string) (*models.Student, error) {
	query := `
		INSERT INTO students (classroom_id, username, display_name, passcode_hash, avatar_color)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, classroomID, username, displayName, passcodeHash, avatarColor)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return &models.Student{
		ID:           id,
		ClassroomID:  classroomID,
		Username:     username,
		DisplayName:  displayName,
		PasscodeHash: passcodeHash,
		AvatarColor:  avatarColor,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

const studentColumns = "id, classroom_id, username, display_name, passcode_hash, avatar_color, created_at, updated_at"

// GetStudentByID retrieves a student by ID
func (r *StudentRepository) GetStudentByID(id int64) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE id = ?"
	return r.scanStudent(r.db.QueryRow(query, id))
}

// GetStudentByUsername retrieves a student by username within a classroom
func (r *StudentRepository) GetStudentByUsername(classroomID int64, username string) (*models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE classroom_id = ? AND username = ?"
	return r.scanStudent(r.db.QueryRow(query, classroomID, username))
}

func (r *StudentRepository) scanStudent(row *sql.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID,
		&student.ClassroomID,
		&student.Username,
		&student.DisplayName,
		&student.PasscodeHash,
		&student.AvatarColor,
		&student.CreatedAt,
		&student.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// GetClassroomStudents retrieves the roster of a classroom
func (r *StudentRepository) GetClassroomStudents(classroomID int64) ([]models.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE classroom_id = ? ORDER BY display_name ASC"
	rows, err := r.db.Query(query, classroomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID,
			&s.ClassroomID,
			&s.Username,
			&s.DisplayName,
			&s.PasscodeHash,
			&s.AvatarColor,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// UpdateStudent updates a student's display name and avatar colour
func (r *StudentRepository) UpdateStudent(id int64, displayName, avatarColor string) error {
	query := "UPDATE students SET display_name = ?, avatar_color = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, displayName, avatarColor, id); err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return nil
}

// UpdatePasscode replaces a student's passcode hash
func (r *StudentRepository) UpdatePasscode(id int64, passcodeHash string) error {
	query := "UPDATE students SET passcode_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, passcodeHash, id); err != nil {
		return fmt.Errorf("failed to update passcode: %w", err)
	}
	return nil
}

// DeleteStudent removes a student profile
func (r *StudentRepository) DeleteStudent(id int64) error {
	if _, err := r.db.Exec("DELETE FROM students WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

// GetStudentStats aggregates a student's attempt history
func (r *StudentRepository) GetStudentStats(studentID int64) (*models.StudentWithStats, error) {
	student, err := r.GetStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}

	stats := &models.StudentWithStats{Student: *student}
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(points_earned), 0)
		FROM spell_attempts
		WHERE student_id = ?
	`
	err = r.db.QueryRow(query, studentID).Scan(&stats.TotalAttempts, &stats.TotalCorrect, &stats.TotalPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to get student stats: %w", err)
	}

	assignQuery := `
		SELECT COUNT(*)
		FROM word_set_assignments a
		JOIN students s ON s.classroom_id = a.classroom_id
		WHERE s.id = ?
	`
	if err := r.db.QueryRow(assignQuery, studentID).Scan(&stats.AssignedSets); err != nil {
		return nil, fmt.Errorf("failed to count assigned sets: %w", err)
	}

	return stats, nil
}
