package handlers

import (
	"net/http"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/game"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// SpellHandler serves the letter arrangement game to students
type SpellHandler struct {
	spellService *service.SpellService
}

// NewSpellHandler creates a new spell handler
func NewSpellHandler(spellService *service.SpellService) *SpellHandler {
	return &SpellHandler{spellService: spellService}
}

type startSessionRequest struct {
	WordSetID int64 `json:"wordSetId"`
}

type startSessionResponse struct {
	Session sessionView `json:"session"`
	Words   []wordView  `json:"words"`
}

// StartSession begins or resumes a run through a word set
func (h *SpellHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, words, err := h.spellService.StartSession(student.ID, req.WordSetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, startSessionResponse{
		Session: newSessionView(session),
		Words:   newWordViews(words),
	})
}

type startWordResponse struct {
	Word     wordView      `json:"word"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// StartWord begins or resumes the game for one word
func (h *SpellHandler) StartWord(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	wordID, err := pathID(r, "wordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	view, err := h.spellService.StartWord(student.ID, sessionID, wordID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, startWordResponse{
		Word:     newWordView(&view.Word),
		Snapshot: view.Snapshot,
	})
}

type placeRequest struct {
	TileID     int   `json:"tileId"`
	DurationMs int64 `json:"durationMs"`
}

// Place puts a tile into the leftmost empty slot
func (h *SpellHandler) Place(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	wordID, err := pathID(r, "wordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	var req placeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	move, err := h.spellService.PlaceTile(student.ID, sessionID, wordID, req.TileID, req.DurationMs)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newMoveView(move))
}

type removeRequest struct {
	SlotIndex int `json:"slotIndex"`
}

// Remove takes a tile out of a slot and returns it to the pool
func (h *SpellHandler) Remove(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	wordID, err := pathID(r, "wordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	var req removeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	move, err := h.spellService.RemoveTile(student.ID, sessionID, wordID, req.SlotIndex)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newMoveView(move))
}

// Reset reshuffles the word and clears the slots
func (h *SpellHandler) Reset(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	wordID, err := pathID(r, "wordID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word id")
		return
	}

	move, err := h.spellService.ResetWord(student.ID, sessionID, wordID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newMoveView(move))
}

// Complete closes the session and returns its totals
func (h *SpellHandler) Complete(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	sessionID, err := pathID(r, "sessionID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.spellService.CompleteSession(student.ID, sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newSessionView(session))
}
