package models

import "time"

// Classroom represents a group of students taught together. Students join
// with the classroom code plus their own credentials.
type Classroom struct {
	ID        int64
	TeacherID int64
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClassroomWithStudents combines a classroom with its roster
type ClassroomWithStudents struct {
	Classroom Classroom
	Students  []Student
}
