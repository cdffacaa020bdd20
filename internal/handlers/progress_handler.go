package handlers

import (
	"net/http"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// ProgressHandler serves progress reports to teachers
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

type studentSummaryResponse struct {
	Student         studentStatsView `json:"student"`
	RecentSessions  []sessionView    `json:"recentSessions"`
	WordStats       []wordStatView   `json:"wordStats"`
	StrugglingWords []wordStatView   `json:"strugglingWords"`
}

// StudentSummary returns one student's progress on a word set
func (h *ProgressHandler) StudentSummary(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	studentID, err := pathID(r, "studentID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid student id")
		return
	}
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	summary, err := h.progressService.GetStudentSummary(teacher.ID, studentID, wordSetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := studentSummaryResponse{
		Student:         newStudentStatsView(summary.Student),
		RecentSessions:  make([]sessionView, len(summary.RecentSessions)),
		WordStats:       newWordStatViews(summary.WordStats),
		StrugglingWords: newWordStatViews(summary.StrugglingWords),
	}
	for i := range summary.RecentSessions {
		resp.RecentSessions[i] = newSessionView(&summary.RecentSessions[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

type classroomSummaryResponse struct {
	Classroom classroomView      `json:"classroom"`
	Students  []studentStatsView `json:"students"`
}

// ClassroomSummary returns roster-wide progress for a classroom
func (h *ProgressHandler) ClassroomSummary(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	classroomID, err := pathID(r, "classroomID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid classroom id")
		return
	}

	summary, err := h.progressService.GetClassroomSummary(teacher.ID, classroomID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := classroomSummaryResponse{
		Classroom: newClassroomView(summary.Classroom),
		Students:  make([]studentStatsView, len(summary.Students)),
	}
	for i := range summary.Students {
		resp.Students[i] = newStudentStatsView(&summary.Students[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

type emailSummaryRequest struct {
	Email string `json:"email"`
}

// EmailStudentSummary mails a student's progress report
func (h *ProgressHandler) EmailStudentSummary(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	studentID, err := pathID(r, "studentID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid student id")
		return
	}
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	var req emailSummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.progressService.EmailStudentSummary(teacher.ID, studentID, wordSetID, req.Email); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
