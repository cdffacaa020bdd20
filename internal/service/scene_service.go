package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/ai"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
)

var (
	ErrSceneNotFound = errors.New("scene not found")
	ErrNotSceneOwner = errors.New("scene belongs to another teacher")
	ErrObjectMissed  = errors.New("tap did not hit any object")
	ErrWordNotInSet  = errors.New("word does not belong to the scene's word set")
)

// Generated scene images are square at this edge length
const sceneImageSize = 1024

// SceneService builds illustrated find-and-spell scenes. A scene is an
// AI-generated picture; the teacher marks findable objects on it, each
// linked to a word. Students tap an object and spell its word.
type SceneService struct {
	sceneRepo   *repository.SceneRepository
	wordSetRepo *repository.WordSetRepository
	aiClient    *ai.Client
	imageDir    string
}

// NewSceneService creates a new scene service. imageDir is where generated
// images are written, under the static root.
func NewSceneService(
	sceneRepo *repository.SceneRepository,
	wordSetRepo *repository.WordSetRepository,
	aiClient *ai.Client,
	imageDir string,
) *SceneService {
	return &SceneService{
		sceneRepo:   sceneRepo,
		wordSetRepo: wordSetRepo,
		aiClient:    aiClient,
		imageDir:    imageDir,
	}
}

// GenerateScene asks the image model for an illustration containing the
// word set's words and stores it
func (s *SceneService) GenerateScene(ctx context.Context, teacherID, wordSetID int64, title, stylePrompt string) (*models.Scene, error) {
	set, err := s.wordSetRepo.GetWordSetByID(wordSetID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrWordSetNotFound
	}
	if set.TeacherID != teacherID {
		return nil, ErrNotWordSetOwner
	}

	words, err := s.wordSetRepo.GetWords(wordSetID)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyWordSet
	}

	prompt := buildScenePrompt(words, stylePrompt)
	size := fmt.Sprintf("%dx%d", sceneImageSize, sceneImageSize)
	img, err := s.aiClient.GenerateSceneImage(ctx, prompt, size)
	if err != nil {
		return nil, err
	}

	scene, err := s.sceneRepo.CreateScene(teacherID, wordSetID, title, "", sceneImageSize, sceneImageSize)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("scene_%d.png", scene.ID)
	if err := os.WriteFile(filepath.Join(s.imageDir, filename), img, 0644); err != nil {
		return nil, fmt.Errorf("failed to write scene image: %w", err)
	}
	if err := s.sceneRepo.UpdateSceneImage(scene.ID, filename); err != nil {
		return nil, err
	}
	scene.ImagePath = filename
	return scene, nil
}

// buildScenePrompt describes the wanted illustration to the image model
func buildScenePrompt(words []models.Word, stylePrompt string) string {
	names := make([]string, len(words))
	for i, w := range words {
		names[i] = w.Text
	}
	style := stylePrompt
	if style == "" {
		style = "a bright, friendly cartoon illustration for young children"
	}
	return fmt.Sprintf(
		"Draw %s. The picture must clearly contain each of these objects, each visible and distinct: %s. No text or letters in the image.",
		style, strings.Join(names, ", "),
	)
}

// GetScene loads a scene with its objects, verifying ownership for teachers.
// Pass teacherID 0 to skip the ownership check (student access goes through
// assignment checks instead).
func (s *SceneService) GetScene(teacherID, sceneID int64) (*models.Scene, []models.SceneObject, error) {
	scene, err := s.sceneRepo.GetSceneByID(sceneID)
	if err != nil {
		return nil, nil, err
	}
	if scene == nil {
		return nil, nil, ErrSceneNotFound
	}
	if teacherID != 0 && scene.TeacherID != teacherID {
		return nil, nil, ErrNotSceneOwner
	}
	objects, err := s.sceneRepo.GetSceneObjects(sceneID)
	if err != nil {
		return nil, nil, err
	}
	return scene, objects, nil
}

// AddObject marks a findable object on a scene
func (s *SceneService) AddObject(teacherID, sceneID, wordID int64, label string, region models.Region) (*models.SceneObject, error) {
	scene, _, err := s.GetScene(teacherID, sceneID)
	if err != nil {
		return nil, err
	}

	word, err := s.wordSetRepo.GetWordByID(wordID)
	if err != nil {
		return nil, err
	}
	if word == nil || word.WordSetID != scene.WordSetID {
		return nil, ErrWordNotInSet
	}
	return s.sceneRepo.AddObject(sceneID, wordID, label, region)
}

// RemoveObject deletes one marked object from a scene
func (s *SceneService) RemoveObject(teacherID, sceneID, objectID int64) error {
	if _, _, err := s.GetScene(teacherID, sceneID); err != nil {
		return err
	}
	return s.sceneRepo.DeleteObject(objectID)
}

// ListScenes returns the scenes built for a word set
func (s *SceneService) ListScenes(teacherID, wordSetID int64) ([]models.Scene, error) {
	set, err := s.wordSetRepo.GetWordSetByID(wordSetID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrWordSetNotFound
	}
	if set.TeacherID != teacherID {
		return nil, ErrNotWordSetOwner
	}
	return s.sceneRepo.GetWordSetScenes(wordSetID)
}

// DeleteScene removes a scene and its image file
func (s *SceneService) DeleteScene(teacherID, sceneID int64) error {
	scene, _, err := s.GetScene(teacherID, sceneID)
	if err != nil {
		return err
	}
	if scene.ImagePath != "" {
		os.Remove(filepath.Join(s.imageDir, scene.ImagePath))
	}
	return s.sceneRepo.DeleteScene(sceneID)
}

// HitTest resolves a student's tap to the object it landed on. Objects are
// checked in insertion order; the first region containing the point wins.
func (s *SceneService) HitTest(sceneID int64, x, y float64) (*models.SceneObject, error) {
	objects, err := s.sceneRepo.GetSceneObjects(sceneID)
	if err != nil {
		return nil, err
	}
	for i := range objects {
		if objects[i].Region.Contains(x, y) {
			return &objects[i], nil
		}
	}
	return nil, ErrObjectMissed
}
