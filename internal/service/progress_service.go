package service

import (
	"fmt"
	"strings"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
)

// A word counts as struggling once it has enough attempts and a low
// success rate
const (
	strugglingMinAttempts = 3
	strugglingMaxRate     = 0.6
)

// ProgressService summarises student performance for teachers
type ProgressService struct {
	attemptRepo   *repository.AttemptRepository
	studentRepo   *repository.StudentRepository
	classroomRepo *repository.ClassroomRepository
	wordSetRepo   *repository.WordSetRepository
	email         *EmailService
}

// NewProgressService creates a new progress service
func NewProgressService(
	attemptRepo *repository.AttemptRepository,
	studentRepo *repository.StudentRepository,
	classroomRepo *repository.ClassroomRepository,
	wordSetRepo *repository.WordSetRepository,
	email *EmailService,
) *ProgressService {
	return &ProgressService{
		attemptRepo:   attemptRepo,
		studentRepo:   studentRepo,
		classroomRepo: classroomRepo,
		wordSetRepo:   wordSetRepo,
		email:         email,
	}
}

// StudentSummary is one student's progress across a word set
type StudentSummary struct {
	Student         *models.StudentWithStats
	RecentSessions  []models.SpellSession
	WordStats       []repository.WordStat
	StrugglingWords []repository.WordStat
}

// GetStudentSummary builds a progress report for one student on one word set
func (s *ProgressService) GetStudentSummary(teacherID, studentID, wordSetID int64) (*StudentSummary, error) {
	student, err := s.studentRepo.GetStudentByID(studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrInvalidCredentials
	}
	classroom, err := s.classroomRepo.GetClassroomByID(student.ClassroomID)
	if err != nil {
		return nil, err
	}
	if classroom == nil || classroom.TeacherID != teacherID {
		return nil, ErrNotClassroomOwner
	}

	stats, err := s.studentRepo.GetStudentStats(studentID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.attemptRepo.GetStudentSessions(studentID, 10)
	if err != nil {
		return nil, err
	}
	wordStats, err := s.attemptRepo.GetWordStats(studentID, wordSetID)
	if err != nil {
		return nil, err
	}

	return &StudentSummary{
		Student:         stats,
		RecentSessions:  sessions,
		WordStats:       wordStats,
		StrugglingWords: strugglingWords(wordStats),
	}, nil
}

// strugglingWords filters per-word stats down to the ones worth extra
// practice
func strugglingWords(stats []repository.WordStat) []repository.WordStat {
	var out []repository.WordStat
	for _, st := range stats {
		if st.Attempts >= strugglingMinAttempts && st.SuccessRate() < strugglingMaxRate {
			out = append(out, st)
		}
	}
	return out
}

// ClassroomSummary aggregates every student in a classroom
type ClassroomSummary struct {
	Classroom *models.Classroom
	Students  []models.StudentWithStats
}

// GetClassroomSummary builds a roster-wide progress view
func (s *ProgressService) GetClassroomSummary(teacherID, classroomID int64) (*ClassroomSummary, error) {
	classroom, err := s.classroomRepo.GetClassroomByID(classroomID)
	if err != nil {
		return nil, err
	}
	if classroom == nil {
		return nil, ErrClassroomNotFound
	}
	if classroom.TeacherID != teacherID {
		return nil, ErrNotClassroomOwner
	}

	students, err := s.studentRepo.GetClassroomStudents(classroomID)
	if err != nil {
		return nil, err
	}

	summary := &ClassroomSummary{Classroom: classroom}
	for _, st := range students {
		withStats, err := s.studentRepo.GetStudentStats(st.ID)
		if err != nil {
			return nil, err
		}
		summary.Students = append(summary.Students, *withStats)
	}
	return summary, nil
}

// EmailStudentSummary mails a plain-text progress report to the given
// address, typically a parent's
func (s *ProgressService) EmailStudentSummary(teacherID, studentID, wordSetID int64, toEmail string) error {
	summary, err := s.GetStudentSummary(teacherID, studentID, wordSetID)
	if err != nil {
		return err
	}
	set, err := s.wordSetRepo.GetWordSetByID(wordSetID)
	if err != nil {
		return err
	}
	if set == nil {
		return ErrWordSetNotFound
	}
	body := formatSummaryEmail(summary, set.Name)
	return s.email.SendProgressSummaryEmail(toEmail, summary.Student.DisplayName, body)
}

// formatSummaryEmail renders a progress summary as plain text
func formatSummaryEmail(summary *StudentSummary, setName string) string {
	var b strings.Builder
	st := summary.Student
	fmt.Fprintf(&b, "Progress report for %s on %q\n\n", st.DisplayName, setName)
	fmt.Fprintf(&b, "Attempts: %d\nCorrect: %d\nPoints: %d\n", st.TotalAttempts, st.TotalCorrect, st.TotalPoints)
	if len(summary.StrugglingWords) > 0 {
		b.WriteString("\nWords that need more practice:\n")
		for _, w := range summary.StrugglingWords {
			fmt.Fprintf(&b, "  %s (%d of %d correct)\n", w.Text, w.Correct, w.Attempts)
		}
	} else {
		b.WriteString("\nNo words currently need extra practice. Well done!\n")
	}
	return b.String()
}
