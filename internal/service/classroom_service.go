package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/credentials"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/security"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/validation"
)

var (
	ErrNotClassroomOwner = errors.New("classroom belongs to another teacher")
	ErrUsernameRejected  = errors.New("could not generate an acceptable username")
)

const invitationTTL = 7 * 24 * time.Hour

// NewStudentCredentials is handed to the teacher exactly once, when a
// student is created; only the hash is stored.
type NewStudentCredentials struct {
	Student  *models.Student
	Passcode string
}

// ClassroomService manages classrooms, rosters and co-teacher invitations
type ClassroomService struct {
	classroomRepo  *repository.ClassroomRepository
	studentRepo    *repository.StudentRepository
	invitationRepo *repository.InvitationRepository
	teacherRepo    *repository.TeacherRepository
	db             *database.DB
	email          *EmailService
}

// NewClassroomService creates a new classroom service
func NewClassroomService(
	classroomRepo *repository.ClassroomRepository,
	studentRepo *repository.StudentRepository,
	invitationRepo *repository.InvitationRepository,
	teacherRepo *repository.TeacherRepository,
	db *database.DB,
	email *EmailService,
) *ClassroomService {
	return &ClassroomService{
		classroomRepo:  classroomRepo,
		studentRepo:    studentRepo,
		invitationRepo: invitationRepo,
		teacherRepo:    teacherRepo,
		db:             db,
		email:          email,
	}
}

// CreateClassroom creates a classroom with a fresh join code
func (s *ClassroomService) CreateClassroom(teacherID int64, name string) (*models.Classroom, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	code, err := generateClassroomCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate classroom code: %w", err)
	}
	return s.classroomRepo.CreateClassroom(teacherID, name, code)
}

// generateClassroomCode returns a 6-character code that students can type.
// Ambiguous characters (0/O, 1/I) are excluded.
func generateClassroomCode() (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	code := make([]byte, 6)
	for i := range code {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		code[i] = chars[num.Int64()]
	}
	return string(code), nil
}

// GetClassroom loads a classroom, verifying ownership
func (s *ClassroomService) GetClassroom(teacherID, classroomID int64) (*models.Classroom, error) {
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
	return classroom, nil
}

// ListClassrooms returns a teacher's classrooms
func (s *ClassroomService) ListClassrooms(teacherID int64) ([]models.Classroom, error) {
	return s.classroomRepo.GetTeacherClassrooms(teacherID)
}

// GetRoster returns a classroom with its students
func (s *ClassroomService) GetRoster(teacherID, classroomID int64) (*models.ClassroomWithStudents, error) {
	classroom, err := s.GetClassroom(teacherID, classroomID)
	if err != nil {
		return nil, err
	}
	students, err := s.studentRepo.GetClassroomStudents(classroomID)
	if err != nil {
		return nil, err
	}
	return &models.ClassroomWithStudents{Classroom: *classroom, Students: students}, nil
}

// AddStudent creates a student profile with generated credentials. Generated
// usernames are screened against the bad words filter and retried.
func (s *ClassroomService) AddStudent(teacherID, classroomID int64, displayName, avatarColor string) (*NewStudentCredentials, error) {
	if _, err := s.GetClassroom(teacherID, classroomID); err != nil {
		return nil, err
	}
	if err := validation.ValidateName(displayName); err != nil {
		return nil, err
	}

	username, err := s.pickUsername(classroomID)
	if err != nil {
		return nil, err
	}

	passcode, err := credentials.GeneratePasscode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate passcode: %w", err)
	}
	passcodeHash, err := security.HashPassword(passcode)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passcode: %w", err)
	}

	student, err := s.studentRepo.CreateStudent(classroomID, username, displayName, passcodeHash, avatarColor)
	if err != nil {
		return nil, err
	}
	return &NewStudentCredentials{Student: student, Passcode: passcode}, nil
}

// pickUsername draws generated usernames until one is clean and unused
func (s *ClassroomService) pickUsername(classroomID int64) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		username, err := credentials.GenerateUsername()
		if err != nil {
			return "", fmt.Errorf("failed to generate username: %w", err)
		}
		bad, err := s.db.IsBadWord(username)
		if err != nil {
			return "", err
		}
		if bad {
			continue
		}
		existing, err := s.studentRepo.GetStudentByUsername(classroomID, username)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return username, nil
		}
	}
	return "", ErrUsernameRejected
}

// ResetPasscode issues a new passcode for a student
func (s *ClassroomService) ResetPasscode(teacherID, classroomID, studentID int64) (string, error) {
	if _, err := s.GetClassroom(teacherID, classroomID); err != nil {
		return "", err
	}

	passcode, err := credentials.GeneratePasscode()
	if err != nil {
		return "", fmt.Errorf("failed to generate passcode: %w", err)
	}
	passcodeHash, err := security.HashPassword(passcode)
	if err != nil {
		return "", fmt.Errorf("failed to hash passcode: %w", err)
	}
	if err := s.studentRepo.UpdatePasscode(studentID, passcodeHash); err != nil {
		return "", err
	}
	return passcode, nil
}

// RemoveStudent deletes a student profile
func (s *ClassroomService) RemoveStudent(teacherID, classroomID, studentID int64) error {
	if _, err := s.GetClassroom(teacherID, classroomID); err != nil {
		return err
	}
	return s.studentRepo.DeleteStudent(studentID)
}

// InviteTeacher emails a co-teacher invitation for a classroom
func (s *ClassroomService) InviteTeacher(teacherID, classroomID int64, email string) (*models.Invitation, error) {
	classroom, err := s.GetClassroom(teacherID, classroomID)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}

	inviter, err := s.teacherRepo.GetTeacherByID(teacherID)
	if err != nil {
		return nil, err
	}

	invitation, err := s.invitationRepo.CreateInvitation(email, classroomID, teacherID, time.Now().Add(invitationTTL))
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	inviterName := ""
	if inviter != nil {
		inviterName = inviter.Name
	}
	if err := s.email.SendInvitationEmail(email, inviterName, classroom.Name, invitation.Code); err != nil {
		return nil, fmt.Errorf("failed to send invitation email: %w", err)
	}
	return invitation, nil
}
