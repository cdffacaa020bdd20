package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/database"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

// SceneRepository handles database operations for scenes and their objects
type SceneRepository struct {
	db *database.DB
}

// NewSceneRepository creates a new scene repository
func NewSceneRepository(db *database.DB) *SceneRepository {
	return &SceneRepository{db: db}
}

// CreateScene stores a generated scene image
func (r *SceneRepository) CreateScene(teacherID, wordSetID int64, title, imagePath string, width, height int) (*models.Scene, error) {
	query := `
		INSERT INTO scenes (teacher_id, word_set_id, title, image_path, width, height)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, teacherID, wordSetID, title, imagePath, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	return &models.Scene{
		ID:        id,
		TeacherID: teacherID,
		WordSetID: wordSetID,
		Title:     title,
		ImagePath: imagePath,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
	}, nil
}

// GetSceneByID retrieves a scene by ID
func (r *SceneRepository) GetSceneByID(id int64) (*models.Scene, error) {
	query := "SELECT id, teacher_id, word_set_id, title, image_path, width, height, created_at FROM scenes WHERE id = ?"
	scene := &models.Scene{}
	err := r.db.QueryRow(query, id).Scan(
		&scene.ID,
		&scene.TeacherID,
		&scene.WordSetID,
		&scene.Title,
		&scene.ImagePath,
		&scene.Width,
		&scene.Height,
		&scene.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scene: %w", err)
	}
	return scene, nil
}

// GetWordSetScenes retrieves all scenes built for a word set
func (r *SceneRepository) GetWordSetScenes(wordSetID int64) ([]models.Scene, error) {
	query := `
		SELECT id, teacher_id, word_set_id, title, image_path, width, height, created_at
		FROM scenes
		WHERE word_set_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, wordSetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenes: %w", err)
	}
	defer rows.Close()

	var scenes []models.Scene
	for rows.Next() {
		var s models.Scene
		if err := rows.Scan(&s.ID, &s.TeacherID, &s.WordSetID, &s.Title, &s.ImagePath, &s.Width, &s.Height, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scene: %w", err)
		}
		scenes = append(scenes, s)
	}
	return scenes, rows.Err()
}

// UpdateSceneImage sets the stored image path after the file is written
func (r *SceneRepository) UpdateSceneImage(id int64, imagePath string) error {
	if _, err := r.db.Exec("UPDATE scenes SET image_path = ? WHERE id = ?", imagePath, id); err != nil {
		return fmt.Errorf("failed to update scene image: %w", err)
	}
	return nil
}

// DeleteScene removes a scene and its objects
func (r *SceneRepository) DeleteScene(id int64) error {
	if _, err := r.db.Exec("DELETE FROM scenes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	return nil
}

// AddObject places a findable object in a scene. The region's unused fields
// are stored as zero.
func (r *SceneRepository) AddObject(sceneID, wordID int64, label string, region models.Region) (*models.SceneObject, error) {
	query := `
		INSERT INTO scene_objects (scene_id, word_id, label, region_kind, x, y, radius, width, height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		sceneID, wordID, label,
		string(region.Kind), region.X, region.Y, region.Radius, region.Width, region.Height,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add scene object: %w", err)
	}

	return &models.SceneObject{
		ID:      id,
		SceneID: sceneID,
		WordID:  wordID,
		Label:   label,
		Region:  region,
	}, nil
}

// GetSceneObjects retrieves all findable objects in a scene
func (r *SceneRepository) GetSceneObjects(sceneID int64) ([]models.SceneObject, error) {
	query := `
		SELECT id, scene_id, word_id, label, region_kind, x, y, radius, width, height
		FROM scene_objects
		WHERE scene_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, sceneID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scene objects: %w", err)
	}
	defer rows.Close()

	var objects []models.SceneObject
	for rows.Next() {
		var o models.SceneObject
		var kind string
		if err := rows.Scan(
			&o.ID,
			&o.SceneID,
			&o.WordID,
			&o.Label,
			&kind,
			&o.Region.X,
			&o.Region.Y,
			&o.Region.Radius,
			&o.Region.Width,
			&o.Region.Height,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scene object: %w", err)
		}
		o.Region.Kind = models.RegionKind(kind)
		objects = append(objects, o)
	}
	return objects, rows.Err()
}

// DeleteObject removes one object from a scene
func (r *SceneRepository) DeleteObject(id int64) error {
	if _, err := r.db.Exec("DELETE FROM scene_objects WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete scene object: %w", err)
	}
	return nil
}
