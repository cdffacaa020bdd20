package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// SceneHandler serves scene management for teachers and tap hit-testing for
// students
type SceneHandler struct {
	sceneService *service.SceneService
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(sceneService *service.SceneService) *SceneHandler {
	return &SceneHandler{sceneService: sceneService}
}

type generateSceneRequest struct {
	WordSetID   int64  `json:"wordSetId"`
	Title       string `json:"title"`
	StylePrompt string `json:"stylePrompt"`
}

// Generate builds a new scene image for a word set. Slow; the image model
// call dominates.
func (h *SceneHandler) Generate(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	var req generateSceneRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	scene, err := h.sceneService.GenerateScene(r.Context(), teacher.ID, req.WordSetID, req.Title, req.StylePrompt)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newSceneView(scene))
}

// List returns the scenes built for a word set
func (h *SceneHandler) List(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	wordSetID, err := pathID(r, "wordSetID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid word set id")
		return
	}

	scenes, err := h.sceneService.ListScenes(teacher.ID, wordSetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]sceneView, len(scenes))
	for i := range scenes {
		views[i] = newSceneView(&scenes[i])
	}
	respondJSON(w, http.StatusOK, views)
}

type sceneDetailResponse struct {
	sceneView
	Objects []sceneObjectView `json:"objects"`
}

// Get returns a scene with its objects
func (h *SceneHandler) Get(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scene id")
		return
	}

	scene, objects, err := h.sceneService.GetScene(teacher.ID, sceneID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := sceneDetailResponse{
		sceneView: newSceneView(scene),
		Objects:   make([]sceneObjectView, len(objects)),
	}
	for i := range objects {
		resp.Objects[i] = newSceneObjectView(&objects[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

type addObjectRequest struct {
	WordID int64      `json:"wordId"`
	Label  string     `json:"label"`
	Region regionView `json:"region"`
}

// AddObject marks a findable object on a scene
func (h *SceneHandler) AddObject(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scene id")
		return
	}

	var req addObjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	object, err := h.sceneService.AddObject(teacher.ID, sceneID, req.WordID, req.Label, req.Region.toModel())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newSceneObjectView(object))
}

// RemoveObject deletes one marked object
func (h *SceneHandler) RemoveObject(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scene id")
		return
	}
	objectID, err := pathID(r, "objectID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid object id")
		return
	}

	if err := h.sceneService.RemoveObject(teacher.ID, sceneID, objectID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete removes a scene and its image
func (h *SceneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teacher := GetTeacherFromContext(r.Context())
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scene id")
		return
	}

	if err := h.sceneService.DeleteScene(teacher.ID, sceneID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type hitTestResponse struct {
	Hit    bool             `json:"hit"`
	Object *sceneObjectView `json:"object,omitempty"`
}

// StudentScene returns a scene and its objects to a signed-in student
func (h *SceneHandler) StudentScene(w http.ResponseWriter, r *http.Request) {
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scene id")
		return
	}

	scene, objects, err := h.sceneService.GetScene(0, sceneID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := sceneDetailResponse{
		sceneView: newSceneView(scene),
		Objects:   make([]sceneObjectView, len(objects)),
	}
	for i := range objects {
		resp.Objects[i] = newSceneObjectView(&objects[i])
	}
	respondJSON(w, http.StatusOK, resp)
}

// HitTest resolves a tap to the object it landed on. Misses are a normal
// answer, not an error.
func (h *SceneHandler) HitTest(w http.ResponseWriter, r *http.Request) {
	sceneID, err := pathID(r, "sceneID")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid scene id")
		return
	}
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		respondError(w, http.StatusBadRequest, "invalid tap coordinates")
		return
	}

	object, err := h.sceneService.HitTest(sceneID, x, y)
	if errors.Is(err, service.ErrObjectMissed) {
		respondJSON(w, http.StatusOK, hitTestResponse{Hit: false})
		return
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	view := newSceneObjectView(object)
	respondJSON(w, http.StatusOK, hitTestResponse{Hit: true, Object: &view})
}
