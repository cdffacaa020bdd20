package handlers

import (
	"net/http"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// WordSetHandler serves word set management for teachers
type WordSetHandler struct {
	wordSetService *service.WordSetService
}

// NewWordSetHandler creates a new word set handler
func NewWordSetHandler(wordSetService *service.WordSetService) *WordSetHandler {
	return &WordSetHandler{wordSetService: wordSetService}
}

type wordSetRequest struct {
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}

// Create makes a new word set
func (h *WordSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	var req wordSetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	set, err := h.wordSetService.CreateWordSet(teacher.ID, req.Name, req.Difficulty)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newWordSetView(set))
}

// List returns the teacher's word sets
func (h *WordSetHandler) List(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	sets, err := h.wordSetService.ListWordSets(teacher.ID)
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

type wordSetDetailResponse struct {
	wordSetView
	Words []wordView `json:"words"`
}

// Get returns a word set with its words
func (h *WordSetHandler) Get(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	withWords, err := h.wordSetService.GetWordSetWithWords(teacher.ID, wordSetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wordSetDetailResponse{
		wordSetView: newWordSetView(&withWords.WordSet),
		Words:       newWordViews(withWords.Words),
	})
}

// Update renames a word set or changes its difficulty
func (h *WordSetHandler) Update(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	var req wordSetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.wordSetService.UpdateWordSet(teacher.ID, wordSetID, req.Name, req.Difficulty); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete removes a word set
func (h *WordSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	if err := h.wordSetService.DeleteWordSet(teacher.ID, wordSetID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type addWordRequest struct {
	Text string `json:"text"`
	Hint string `json:"hint"`
}

// AddWord adds a word to a set and fetches its pronunciation audio
func (h *WordSetHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	var req addWordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.wordSetService.AddWord(teacher.ID, wordSetID, req.Text, req.Hint)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newWordView(word))
}

// DeleteWord removes a word from a set
func (h *WordSetHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}
	wordID, err := pathID(r, "wordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	if err := h.wordSetService.DeleteWord(teacher.ID, wordSetID, wordID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type assignRequest struct {
	ClassroomID int64 `json:"classroomId"`
}

// Assign gives a classroom access to a word set
func (h *WordSetHandler) Assign(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.wordSetService.Assign(teacher.ID, wordSetID, req.ClassroomID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Unassign revokes a classroom's access to a word set
func (h *WordSetHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.wordSetService.Unassign(teacher.ID, wordSetID, req.ClassroomID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
