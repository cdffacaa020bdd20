package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/ai"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
)

var ErrWordNotFound = errors.New("word not found")

// DrawingService checks student drawings against their target word using
// the vision model
type DrawingService struct {
	attemptRepo *repository.AttemptRepository
	wordSetRepo *repository.WordSetRepository
	aiClient    *ai.Client
	drawingDir  string
}

// NewDrawingService creates a new drawing service. drawingDir is where
// submitted drawings are archived, under the static root.
func NewDrawingService(
	attemptRepo *repository.AttemptRepository,
	wordSetRepo *repository.WordSetRepository,
	aiClient *ai.Client,
	drawingDir string,
) *DrawingService {
	return &DrawingService{
		attemptRepo: attemptRepo,
		wordSetRepo: wordSetRepo,
		aiClient:    aiClient,
		drawingDir:  drawingDir,
	}
}

// DrawingResult is what the student sees after submitting a drawing
type DrawingResult struct {
	Guess   string
	IsMatch bool
}

// SubmitDrawing runs the recognizer over a PNG drawing, records the outcome
// and tells the student what the model saw. The drawing file is kept so
// teachers can review it later.
func (s *DrawingService) SubmitDrawing(ctx context.Context, studentID, wordID int64, pngImage []byte) (*DrawingResult, error) {
	word, err := s.wordSetRepo.GetWordByID(wordID)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrWordNotFound
	}

	guess, err := s.aiClient.RecognizeDrawing(ctx, pngImage)
	if err != nil {
		return nil, err
	}

	match := drawingMatches(guess, word.Text)

	filename := fmt.Sprintf("drawing_%d_%d_%d.png", studentID, wordID, time.Now().UnixNano())
	imagePath := filename
	if err := os.WriteFile(filepath.Join(s.drawingDir, filename), pngImage, 0644); err != nil {
		// Losing the archive copy should not lose the student's answer
		log.Warn().Err(err).Int64("wordID", wordID).Msg("failed to archive drawing")
		imagePath = ""
	}

	if _, err := s.attemptRepo.CreateDrawing(&models.Drawing{
		StudentID: studentID,
		WordID:    wordID,
		ImagePath: imagePath,
		Guess:     guess,
		IsMatch:   match,
	}); err != nil {
		return nil, err
	}

	return &DrawingResult{Guess: guess, IsMatch: match}, nil
}

// drawingMatches compares the recognizer's guess with the target word.
// The comparison is case-insensitive and tolerates a trailing plural "s"
// on either side.
func drawingMatches(guess, target string) bool {
	g := strings.ToLower(strings.TrimSpace(guess))
	t := strings.ToLower(strings.TrimSpace(target))
	if g == "" || t == "" {
		return false
	}
	if g == t {
		return true
	}
	return strings.TrimSuffix(g, "s") == strings.TrimSuffix(t, "s")
}
