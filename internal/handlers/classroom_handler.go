package handlers

import (
	"net/http"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// ClassroomHandler serves classroom and roster management for teachers
type ClassroomHandler struct {
	classroomService *service.ClassroomService
}

// NewClassroomHandler creates a new classroom handler
func NewClassroomHandler(classroomService *service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomService: classroomService}
}

type createClassroomRequest struct {
	Name string `json:"name"`
}

// Create makes a new classroom with a fresh join code
func (h *ClassroomHandler) Create(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	var req createClassroomRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	classroom, err := h.classroomService.CreateClassroom(teacher.ID, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newClassroomView(classroom))
}

// List returns the teacher's classrooms
func (h *ClassroomHandler) List(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	classrooms, err := h.classroomService.ListClassrooms(teacher.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]classroomView, len(classrooms))
	for i := range classrooms {
		views[i] = newClassroomView(&classrooms[i])
	}
	respondJSON(w, http.StatusOK, views)
}

type rosterResponse struct {
	Classroom classroomView `json:"classroom"`
	Students  []studentView `json:"students"`
}

// Roster returns a classroom with its students
func (h *ClassroomHandler) Roster(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	classroomID, err := pathID(r, "classroomID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid classroom id")
		return
	}

	roster, err := h.classroomService.GetRoster(teacher.ID, classroomID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := rosterResponse{
		Classroom: newClassroomView(&roster.Classroom),
		Students:  make([]studentView, len(roster.Students)),
	}
	for i := range roster.Students {
		resp.Students[i] = newStudentView(&roster.Students[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

type addStudentRequest struct {
	DisplayName string `json:"displayName"`
	AvatarColor string `json:"avatarColor"`
}

type newStudentResponse struct {
	Student  studentView `json:"student"`
	Passcode string      `json:"passcode"`
}

// AddStudent enrols a student and returns their generated credentials. The
// passcode is only ever shown here.
func (h *ClassroomHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	classroomID, err := pathID(r, "classroomID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid classroom id")
		return
	}

	var req addStudentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creds, err := h.classroomService.AddStudent(teacher.ID, classroomID, req.DisplayName, req.AvatarColor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newStudentResponse{
		Student:  newStudentView(creds.Student),
		Passcode: creds.Passcode,
	})
}

// ResetPasscode issues a student a fresh passcode
func (h *ClassroomHandler) ResetPasscode(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	classroomID, err := pathID(r, "classroomID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid classroom id")
		return
	}
	studentID, err := pathID(r, "studentID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	passcode, err := h.classroomService.ResetPasscode(teacher.ID, classroomID, studentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"passcode": passcode})
}

// RemoveStudent takes a student off the roster
func (h *ClassroomHandler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	classroomID, err := pathID(r, "classroomID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid classroom id")
		return
	}
	studentID, err := pathID(r, "studentID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	if err := h.classroomService.RemoveStudent(teacher.ID, classroomID, studentID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type inviteRequest struct {
	Email string `json:"email"`
}

// Invite emails another teacher an invitation to this classroom
func (h *ClassroomHandler) Invite(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	classroomID, err := pathID(r, "classroomID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid classroom id")
		return
	}

	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invitation, err := h.classroomService.InviteTeacher(teacher.ID, classroomID, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"code": invitation.Code})
}
