package handlers

import (
	"net/http"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// StudentHandler serves the student home screen
type StudentHandler struct {
	wordSetService *service.WordSetService
	spellService   *service.SpellService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(wordSetService *service.WordSetService, spellService *service.SpellService) *StudentHandler {
	return &StudentHandler{
		wordSetService: wordSetService,
		spellService:   spellService,
	}
}

// AssignedSets lists the word sets the student's classroom can play
func (h *StudentHandler) AssignedSets(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	sets, err := h.wordSetService.ListAssigned(student.ClassroomID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]wordSetView, len(sets))
	for i := range sets {
		views[i] = newWordSetView(&sets[i])
	}
	respondJSON(w, http.StatusOK, views)
}

// History lists the student's recent sessions
func (h *StudentHandler) History(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	sessions, err := h.spellService.RecentSessions(student.ID, 20)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]sessionView, len(sessions))
	for i := range sessions {
		views[i] = newSessionView(&sessions[i])
	}
	respondJSON(w, http.StatusOK, views)
}
