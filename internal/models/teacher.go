package models

import "time"

// Teacher represents an adult account that manages classrooms
type Teacher struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	GoogleID     string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents a logged-in teacher's browser session
type Session struct {
	ID        string
	TeacherID int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
