package models

import "time"

// Student represents a child profile in a classroom. Students sign in with
// the classroom code, their generated username and a short passcode.
type Student struct {
	ID           int64
	ClassroomID  int64
	Username     string
	DisplayName  string
	PasscodeHash string
	AvatarColor  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StudentWithStats combines a student with their progress statistics
type StudentWithStats struct {
	Student
	TotalAttempts  int
	TotalCorrect   int
	TotalPoints    int
	CurrentStreak  int
	LongestStreak  int
	AssignedSets   int
}
