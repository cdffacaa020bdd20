package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

// ClassroomRepository handles database operations for classrooms
type ClassroomRepository struct {
	db *database.DB
}

// NewClassroomRepository creates a new classroom repository
func NewClassroomRepository(db *database.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// CreateClassroom creates a new classroom with its join code
func (r *ClassroomRepository) CreateClassroom(teacherID int64, name, code string) (*models.Classroom, error) {
	query := "INSERT INTO classrooms (teacher_id, name, code) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, teacherID, name, code)
	if err != nil {
		return nil, fmt.Errorf("failed to create classroom: %w", err)
	}

	return &models.Classroom{
		ID:        id,
		TeacherID: teacherID,
		Name:      name,
		Code:      code,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetClassroomByID retrieves a classroom by ID
func (r *ClassroomRepository) GetClassroomByID(id int64) (*models.Classroom, error) {
	query := "SELECT id, teacher_id, name, code, created_at, updated_at FROM classrooms WHERE id = ?"
	return r.scanClassroom(r.db.QueryRow(query, id))
}

// GetClassroomByCode retrieves a classroom by its join code
func (r *ClassroomRepository) GetClassroomByCode(code string) (*models.Classroom, error) {
	query := "SELECT id, teacher_id, name, code, created_at, updated_at FROM classrooms WHERE code = ?"
	return r.scanClassroom(r.db.QueryRow(query, code))
}

func (r *ClassroomRepository) scanClassroom(row *sql.Row) (*models.Classroom, error) {
	classroom := &models.Classroom{}
	err := row.Scan(
		&classroom.ID,
		&classroom.TeacherID,
		&classroom.Name,
		&classroom.Code,
		&classroom.CreatedAt,
		&classroom.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get classroom: %w", err)
	}
	return classroom, nil
}

// GetTeacherClassrooms retrieves all classrooms managed by a teacher
func (r *ClassroomRepository) GetTeacherClassrooms(teacherID int64) ([]models.Classroom, error) {
	query := `
		SELECT id, teacher_id, name, code, created_at, updated_at
		FROM classrooms
		WHERE teacher_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to query classrooms: %w", err)
	}
	defer rows.Close()

	var classrooms []models.Classroom
	for rows.Next() {
		var c models.Classroom
		if err := rows.Scan(&c.ID, &c.TeacherID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan classroom: %w", err)
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}

// RenameClassroom updates a classroom's name
func (r *ClassroomRepository) RenameClassroom(id int64, name string) error {
	query := "UPDATE classrooms SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, name, id); err != nil {
		return fmt.Errorf("failed to rename classroom: %w", err)
	}
	return nil
}

// DeleteClassroom removes a classroom and, via foreign keys, its students
func (r *ClassroomRepository) DeleteClassroom(id int64) error {
	if _, err := r.db.Exec("DELETE FROM classrooms WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete classroom: %w", err)
	}
	return nil
}
