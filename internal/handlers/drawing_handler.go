package handlers

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// parseDrawingImage accepts a bare base64 PNG or a data URL and returns the
// raw bytes
func parseDrawingImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, errors.New("malformed data URL")
		}
		s = s[i+1:]
	}
	png, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(png) == 0 {
		return nil, errors.New("empty image")
	}
	return png, nil
}

// Drawings larger than this are rejected before reaching the recognizer
const maxDrawingBytes = 2 << 20

// DrawingHandler lets students answer a word by drawing it
type DrawingHandler struct {
	drawingService *service.DrawingService
}

// NewDrawingHandler creates a new drawing handler
func NewDrawingHandler(drawingService *service.DrawingService) *DrawingHandler {
	return &DrawingHandler{drawingService: drawingService}
}

type submitDrawingRequest struct {
	WordID int64  `json:"wordId"`
	Image  string `json:"image"` // base64 PNG, optionally a data URL
}

type submitDrawingResponse struct {
	Guess   string `json:"guess"`
	IsMatch bool   `json:"isMatch"`
}

// Submit runs the recognizer over a student's drawing
func (h *DrawingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	student := GetStudentFromContext(r.Context())
	var req submitDrawingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	png, err := parseDrawingImage(req.Image)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid image data")
		return
	}
	if len(png) > maxDrawingBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "drawing too large")
		return
	}

	result, err := h.drawingService.SubmitDrawing(r.Context(), student.ID, req.WordID, png)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, submitDrawingResponse{
		Guess:   result.Guess,
		IsMatch: result.IsMatch,
	})
}
