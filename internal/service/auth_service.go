package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/security"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrClassroomNotFound  = errors.New("classroom not found")
)

// AuthService handles teacher and student authentication
type AuthService struct {
	teacherRepo     *repository.TeacherRepository
	classroomRepo   *repository.ClassroomRepository
	studentRepo     *repository.StudentRepository
	tokens          *security.TokenIssuer
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	teacherRepo *repository.TeacherRepository,
	classroomRepo *repository.ClassroomRepository,
	studentRepo *repository.StudentRepository,
	tokens *security.TokenIssuer,
	sessionDuration time.Duration,
) *AuthService {
	return &AuthService{
		teacherRepo:     teacherRepo,
		classroomRepo:   classroomRepo,
		studentRepo:     studentRepo,
		tokens:          tokens,
		sessionDuration: sessionDuration,
	}
}

// Register creates a new teacher account
func (s *AuthService) Register(email, password, name string) (*models.Teacher, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}

	existing, err := s.teacherRepo.GetTeacherByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing teacher: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	teacher, err := s.teacherRepo.CreateTeacher(email, passwordHash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}
	return teacher, nil
}

// Login authenticates a teacher and creates a session
func (s *AuthService) Login(email, password string) (*models.Session, *models.Teacher, error) {
	teacher, err := s.teacherRepo.GetTeacherByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(password, teacher.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(teacher.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, teacher, nil
}

// LoginWithGoogle signs in (or links) a teacher through a verified Google
// identity. The email must already have an account unless the Google ID is
// known; teachers register with a password first.
func (s *AuthService) LoginWithGoogle(googleID, email string) (*models.Session, *models.Teacher, error) {
	teacher, err := s.teacherRepo.GetTeacherByGoogleID(googleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up google account: %w", err)
	}

	if teacher == nil {
		teacher, err = s.teacherRepo.GetTeacherByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to look up teacher: %w", err)
		}
		if teacher == nil {
			return nil, nil, ErrInvalidCredentials
		}
		if err := s.teacherRepo.LinkGoogleID(teacher.ID, googleID); err != nil {
			return nil, nil, err
		}
	}

	session, err := s.createSession(teacher.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, teacher, nil
}

func (s *AuthService) createSession(teacherID int64) (*models.Session, error) {
	session := &models.Session{
		ID:        security.GenerateSessionID(),
		TeacherID: teacherID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(s.sessionDuration),
	}
	if err := s.teacherRepo.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Logout removes a session
func (s *AuthService) Logout(sessionID string) error {
	return s.teacherRepo.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes all expired teacher sessions
func (s *AuthService) CleanupExpiredSessions() error {
	return s.teacherRepo.DeleteExpiredSessions()
}

// ValidateSession checks a session cookie value and returns its teacher
func (s *AuthService) ValidateSession(sessionID string) (*models.Teacher, error) {
	session, err := s.teacherRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		// Best effort cleanup
		s.teacherRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	teacher, err := s.teacherRepo.GetTeacherByID(session.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, ErrSessionNotFound
	}
	return teacher, nil
}

// StudentLogin signs in a student with classroom code, username and passcode
// and issues a JWT for the game client.
func (s *AuthService) StudentLogin(classroomCode, username, passcode string) (string, *models.Student, error) {
	classroom, err := s.classroomRepo.GetClassroomByCode(strings.ToUpper(strings.TrimSpace(classroomCode)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to get classroom: %w", err)
	}
	if classroom == nil {
		return "", nil, ErrInvalidCredentials
	}

	student, err := s.studentRepo.GetStudentByUsername(classroom.ID, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return "", nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !security.CheckPassword(passcode, student.PasscodeHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(student.ID, student.ClassroomID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, student, nil
}

// VerifyStudentToken validates a student JWT and loads the student
func (s *AuthService) VerifyStudentToken(token string) (*models.Student, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	student, err := s.studentRepo.GetStudentByID(claims.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrInvalidCredentials
	}
	return student, nil
}
