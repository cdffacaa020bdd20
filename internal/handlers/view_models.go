package handlers

import (
	"time"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/game"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/service"
)

// JSON views of the domain models. The models themselves stay free of
// transport concerns.

type teacherView struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
}

func newTeacherView(t *models.Teacher) teacherView {
	return teacherView{ID: t.ID, Email: t.Email, Name: t.Name, IsAdmin: t.IsAdmin}
}

type classroomView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func newClassroomView(c *models.Classroom) classroomView {
	return classroomView{ID: c.ID, Name: c.Name, Code: c.Code}
}

type studentView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarColor string `json:"avatarColor"`
}

func newStudentView(s *models.Student) studentView {
	return studentView{
		ID:          s.ID,
		Username:    s.Username,
		DisplayName: s.DisplayName,
		AvatarColor: s.AvatarColor,
	}
}

type studentStatsView struct {
	studentView
	TotalAttempts int `json:"totalAttempts"`
	TotalCorrect  int `json:"totalCorrect"`
	TotalPoints   int `json:"totalPoints"`
	AssignedSets  int `json:"assignedSets"`
}

func newStudentStatsView(s *models.StudentWithStats) studentStatsView {
	return studentStatsView{
		studentView:   newStudentView(&s.Student),
		TotalAttempts: s.TotalAttempts,
		TotalCorrect:  s.TotalCorrect,
		TotalPoints:   s.TotalPoints,
		AssignedSets:  s.AssignedSets,
	}
}

type wordSetView struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Difficulty int    `json:"difficulty"`
}

func newWordSetView(ws *models.WordSet) wordSetView {
	return wordSetView{ID: ws.ID, Name: ws.Name, Difficulty: ws.Difficulty}
}

type wordView struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Hint      string `json:"hint,omitempty"`
	AudioPath string `json:"audioPath,omitempty"`
}

func newWordView(w *models.Word) wordView {
	return wordView{ID: w.ID, Text: w.Text, Hint: w.Hint, AudioPath: w.AudioPath}
}

func newWordViews(words []models.Word) []wordView {
	views := make([]wordView, len(words))
	for i := range words {
		views[i] = newWordView(&words[i])
	}
	return views
}

type sessionView struct {
	ID           int64      `json:"id"`
	WordSetID    int64      `json:"wordSetId"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	WordsTotal   int        `json:"wordsTotal"`
	WordsCorrect int        `json:"wordsCorrect"`
	TotalPoints  int        `json:"totalPoints"`
}

func newSessionView(s *models.SpellSession) sessionView {
	return sessionView{
		ID:           s.ID,
		WordSetID:    s.WordSetID,
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
		WordsTotal:   s.WordsTotal,
		WordsCorrect: s.WordsCorrect,
		TotalPoints:  s.TotalPoints,
	}
}

type moveView struct {
	Snapshot game.Snapshot `json:"snapshot"`
	Result   *game.Result  `json:"result,omitempty"`
	Points   int           `json:"points,omitempty"`
}

func newMoveView(m *service.MoveResult) moveView {
	return moveView{Snapshot: m.Snapshot, Result: m.Result, Points: m.Points}
}

type sceneView struct {
	ID        int64  `json:"id"`
	WordSetID int64  `json:"wordSetId"`
	Title     string `json:"title"`
	ImagePath string `json:"imagePath"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

func newSceneView(s *models.Scene) sceneView {
	return sceneView{
		ID:        s.ID,
		WordSetID: s.WordSetID,
		Title:     s.Title,
		ImagePath: s.ImagePath,
		Width:     s.Width,
		Height:    s.Height,
	}
}

type regionView struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

func newRegionView(r models.Region) regionView {
	return regionView{
		Kind:   string(r.Kind),
		X:      r.X,
		Y:      r.Y,
		Radius: r.Radius,
		Width:  r.Width,
		Height: r.Height,
	}
}

func (v regionView) toModel() models.Region {
	return models.Region{
		Kind:   models.RegionKind(v.Kind),
		X:      v.X,
		Y:      v.Y,
		Radius: v.Radius,
		Width:  v.Width,
		Height: v.Height,
	}
}

type sceneObjectView struct {
	ID     int64      `json:"id"`
	WordID int64      `json:"wordId"`
	Label  string     `json:"label"`
	Region regionView `json:"region"`
}

func newSceneObjectView(o *models.SceneObject) sceneObjectView {
	return sceneObjectView{ID: o.ID, WordID: o.WordID, Label: o.Label, Region: newRegionView(o.Region)}
}

type wordStatView struct {
	WordID      int64   `json:"wordId"`
	Text        string  `json:"text"`
	Attempts    int     `json:"attempts"`
	Correct     int     `json:"correct"`
	SuccessRate float64 `json:"successRate"`
}

func newWordStatViews(stats []repository.WordStat) []wordStatView {
	views := make([]wordStatView, len(stats))
	for i, s := range stats {
		views[i] = wordStatView{
			WordID:      s.WordID,
			Text:        s.Text,
			Attempts:    s.Attempts,
			Correct:     s.Correct,
			SuccessRate: s.SuccessRate(),
		}
	}
	return views
}
