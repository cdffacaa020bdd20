package repository

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

// InvitationRepository handles co-teacher invitations to classrooms
type InvitationRepository struct {
	db *database.DB
}

func NewInvitationRepository(db *database.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

// GenerateInvitationCode generates a random invitation code
func (r *InvitationRepository) GenerateInvitationCode() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CreateInvitation creates a new invitation to a classroom
func (r *InvitationRepository) CreateInvitation(email string, classroomID, invitedBy int64, expiresAt time.Time) (*models.Invitation, error) {
	code, err := r.GenerateInvitationCode()
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO invitations (code, email, classroom_id, invited_by, expires_at) VALUES (?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(query, code, email, classroomID, invitedBy, expiresAt)
	if err != nil {
		return nil, err
	}

	return &models.Invitation{
		ID:          id,
		Code:        code,
		Email:       email,
		ClassroomID: classroomID,
		InvitedBy:   invitedBy,
		CreatedAt:   time.Now(),
		ExpiresAt:   expiresAt,
	}, nil
}

// GetInvitationByCode retrieves an invitation by code
func (r *InvitationRepository) GetInvitationByCode(code string) (*models.Invitation, error) {
	query := `
		SELECT i.id, i.code, i.email, i.classroom_id, i.invited_by, i.created_at, i.used_at, i.used_by, i.expires_at, COALESCE(t.name, '')
		FROM invitations i
		LEFT JOIN teachers t ON i.invited_by = t.id
		WHERE i.code = ?
	`
	var inv models.Invitation
	err := r.db.QueryRow(query, code).Scan(
		&inv.ID, &inv.Code, &inv.Email, &inv.ClassroomID, &inv.InvitedBy,
		&inv.CreatedAt, &inv.UsedAt, &inv.UsedBy, &inv.ExpiresAt, &inv.InviterName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// MarkInvitationUsed marks an invitation as used
func (r *InvitationRepository) MarkInvitationUsed(code string, teacherID int64) error {
	query := `UPDATE invitations SET used_at = ?, used_by = ? WHERE code = ?`
	_, err := r.db.Exec(query, time.Now(), teacherID, code)
	return err
}

// GetClassroomInvitations lists invitations sent for a classroom
func (r *InvitationRepository) GetClassroomInvitations(classroomID int64) ([]models.Invitation, error) {
	query := `
		SELECT i.id, i.code, i.email, i.classroom_id, i.invited_by, i.created_at, i.used_at, i.used_by, i.expires_at, COALESCE(t.name, '')
		FROM invitations i
		LEFT JOIN teachers t ON i.invited_by = t.id
		WHERE i.classroom_id = ?
		ORDER BY i.created_at DESC
	`
	rows, err := r.db.Query(query, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.Code, &inv.Email, &inv.ClassroomID, &inv.InvitedBy,
			&inv.CreatedAt, &inv.UsedAt, &inv.UsedBy, &inv.ExpiresAt, &inv.InviterName,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// DeleteInvitation deletes an invitation by ID
func (r *InvitationRepository) DeleteInvitation(id int64) error {
	_, err := r.db.Exec("DELETE FROM invitations WHERE id = ?", id)
	return err
}
