package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/game"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
)

var (
	ErrSessionClosed    = errors.New("session already completed")
	ErrNotSessionOwner  = errors.New("session belongs to another student")
	ErrWordNotInSession = errors.New("word is not part of this session")
	ErrEmptyWordSet     = errors.New("word set has no words")
)

// Sessions longer than this get a weighted subset instead of every word
const maxSessionWords = 20

// SpellService runs the letter arrangement game over persisted sessions.
// The in-memory engine lives in the game package; this service restores it
// from its stored snapshot for every move, applies one operation and stores
// the snapshot back, so any replica can serve any move.
type SpellService struct {
	attemptRepo *repository.AttemptRepository
	stateRepo   *repository.SpellStateRepository
	wordSetRepo *repository.WordSetRepository
}

// NewSpellService creates a new spell service
func NewSpellService(
	attemptRepo *repository.AttemptRepository,
	stateRepo *repository.SpellStateRepository,
	wordSetRepo *repository.WordSetRepository,
) *SpellService {
	return &SpellService{
		attemptRepo: attemptRepo,
		stateRepo:   stateRepo,
		wordSetRepo: wordSetRepo,
	}
}

// WordView is the per-word state handed to the game client
type WordView struct {
	Word     models.Word
	Snapshot game.Snapshot
}

// MoveResult is the outcome of one place/remove/reset operation
type MoveResult struct {
	Snapshot game.Snapshot
	Result   *game.Result // non-nil only on the move that filled the last slot
	Points   int
}

// StartSession resumes a student's open session for the word set, or starts
// a new one with a weighted word selection.
func (s *SpellService) StartSession(studentID, wordSetID int64) (*models.SpellSession, []models.Word, error) {
	allWords, err := s.wordSetRepo.GetWords(wordSetID)
	if err != nil {
		return nil, nil, err
	}
	if len(allWords) == 0 {
		return nil, nil, ErrEmptyWordSet
	}

	if open, err := s.attemptRepo.GetOpenSession(studentID, wordSetID); err != nil {
		return nil, nil, err
	} else if open != nil {
		words := reorderWordsByIDs(allWords, open.WordIDs)
		return open, words, nil
	}

	selected := allWords
	if len(allWords) > maxSessionWords {
		stats, err := s.attemptRepo.GetWordStats(studentID, wordSetID)
		if err != nil {
			return nil, nil, err
		}
		selected = selectWeightedWords(allWords, stats, maxSessionWords, rand.Float64)
	}
	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	session, err := s.attemptRepo.CreateSession(studentID, wordSetID, wordsToIDString(selected), len(selected))
	if err != nil {
		return nil, nil, err
	}
	return session, selected, nil
}

// StartWord begins (or resumes) the letter game for one word in a session
func (s *SpellService) StartWord(studentID, sessionID, wordID int64) (*WordView, error) {
	session, word, err := s.loadSessionWord(studentID, sessionID, wordID)
	if err != nil {
		return nil, err
	}

	g, err := s.loadGame(session.ID, word)
	if err != nil {
		return nil, err
	}
	if err := s.saveGame(session.ID, wordID, g); err != nil {
		return nil, err
	}
	return &WordView{Word: *word, Snapshot: g.Snapshot()}, nil
}

// PlaceTile places one tile. durationMs is the client-measured time on this
// word and only matters on the move that completes it.
func (s *SpellService) PlaceTile(studentID, sessionID, wordID int64, tileID int, durationMs int64) (*MoveResult, error) {
	session, word, err := s.loadSessionWord(studentID, sessionID, wordID)
	if err != nil {
		return nil, err
	}
	g, err := s.restoreGame(session.ID, word)
	if err != nil {
		return nil, err
	}

	result, err := g.Place(tileID)
	if err != nil {
		return nil, err
	}

	move := &MoveResult{Snapshot: g.Snapshot(), Result: result}
	if result != nil {
		move.Points, err = s.recordAttempt(session, word, result, durationMs)
		if err != nil {
			return nil, err
		}
	}

	if result != nil && result.Correct {
		// Solved words do not need their snapshot any more
		if err := s.stateRepo.DeleteState(session.ID, wordID); err != nil {
			return nil, err
		}
	} else if err := s.saveGame(session.ID, wordID, g); err != nil {
		return nil, err
	}
	return move, nil
}

// RemoveTile takes a tile out of a slot, legal while placing or after a
// failed evaluation
func (s *SpellService) RemoveTile(studentID, sessionID, wordID int64, slotIndex int) (*MoveResult, error) {
	session, word, err := s.loadSessionWord(studentID, sessionID, wordID)
	if err != nil {
		return nil, err
	}
	g, err := s.restoreGame(session.ID, word)
	if err != nil {
		return nil, err
	}

	if err := g.Remove(slotIndex); err != nil {
		return nil, err
	}
	if err := s.saveGame(session.ID, wordID, g); err != nil {
		return nil, err
	}
	return &MoveResult{Snapshot: g.Snapshot()}, nil
}

// ResetWord reshuffles the word's tiles and clears all slots
func (s *SpellService) ResetWord(studentID, sessionID, wordID int64) (*MoveResult, error) {
	session, word, err := s.loadSessionWord(studentID, sessionID, wordID)
	if err != nil {
		return nil, err
	}
	g, err := s.restoreGame(session.ID, word)
	if err != nil {
		return nil, err
	}

	if err := g.Reset(); err != nil {
		return nil, err
	}
	if err := s.saveGame(session.ID, wordID, g); err != nil {
		return nil, err
	}
	return &MoveResult{Snapshot: g.Snapshot()}, nil
}

// RecentSessions lists a student's latest sessions, newest first
func (s *SpellService) RecentSessions(studentID int64, limit int) ([]models.SpellSession, error) {
	return s.attemptRepo.GetStudentSessions(studentID, limit)
}

// CompleteSession totals the attempts, closes the session and drops any
// leftover snapshots
func (s *SpellService) CompleteSession(studentID, sessionID int64) (*models.SpellSession, error) {
	_, err := s.loadSession(studentID, sessionID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.GetSessionAttempts(sessionID)
	if err != nil {
		return nil, err
	}

	correctWords := make(map[int64]bool)
	totalPoints := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correctWords[a.WordID] = true
		}
		totalPoints += a.PointsEarned
	}

	if err := s.attemptRepo.CompleteSession(sessionID, len(correctWords), totalPoints); err != nil {
		return nil, err
	}
	if err := s.stateRepo.DeleteSessionStates(sessionID); err != nil {
		return nil, err
	}
	return s.attemptRepo.GetSessionByID(sessionID)
}

func (s *SpellService) loadSession(studentID, sessionID int64) (*models.SpellSession, error) {
	session, err := s.attemptRepo.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.StudentID != studentID {
		return nil, ErrNotSessionOwner
	}
	if session.IsComplete() {
		return nil, ErrSessionClosed
	}
	return session, nil
}

func (s *SpellService) loadSessionWord(studentID, sessionID, wordID int64) (*models.SpellSession, *models.Word, error) {
	session, err := s.loadSession(studentID, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.WordIDs != "" && !idStringContains(session.WordIDs, wordID) {
		return nil, nil, ErrWordNotInSession
	}

	word, err := s.wordSetRepo.GetWordByID(wordID)
	if err != nil {
		return nil, nil, err
	}
	if word == nil || word.WordSetID != session.WordSetID {
		return nil, nil, ErrWordNotInSession
	}
	return session, word, nil
}

// loadGame restores a stored snapshot or starts a fresh game for the word
func (s *SpellService) loadGame(sessionID int64, word *models.Word) (*game.Game, error) {
	stored, err := s.stateRepo.LoadState(sessionID, word.ID)
	if err != nil {
		return nil, err
	}
	if stored != "" {
		var snap game.Snapshot
		if err := json.Unmarshal([]byte(stored), &snap); err == nil {
			if g, err := game.Restore(snap); err == nil {
				return g, nil
			}
		}
		// A corrupt snapshot falls through to a fresh game
	}

	g := game.New()
	if err := g.Start(word.Text); err != nil {
		return nil, err
	}
	return g, nil
}

// restoreGame requires a stored snapshot; moves are only legal on a word
// that was started
func (s *SpellService) restoreGame(sessionID int64, word *models.Word) (*game.Game, error) {
	stored, err := s.stateRepo.LoadState(sessionID, word.ID)
	if err != nil {
		return nil, err
	}
	if stored == "" {
		return nil, game.ErrInvalidOperation
	}
	var snap game.Snapshot
	if err := json.Unmarshal([]byte(stored), &snap); err != nil {
		return nil, fmt.Errorf("corrupt game state: %w", err)
	}
	return game.Restore(snap)
}

func (s *SpellService) saveGame(sessionID, wordID int64, g *game.Game) error {
	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to encode game state: %w", err)
	}
	return s.stateRepo.SaveState(sessionID, wordID, string(data))
}

func (s *SpellService) recordAttempt(session *models.SpellSession, word *models.Word, result *game.Result, durationMs int64) (int, error) {
	set, err := s.wordSetRepo.GetWordSetByID(session.WordSetID)
	if err != nil {
		return 0, err
	}
	difficulty := 1
	if set != nil {
		difficulty = set.Difficulty
	}

	points := 0
	if result.Correct {
		points = calculatePoints(difficulty, durationMs)
	}

	_, err = s.attemptRepo.RecordAttempt(&models.SpellAttempt{
		SessionID:    session.ID,
		StudentID:    session.StudentID,
		WordID:       word.ID,
		Spelled:      result.Spelled,
		IsCorrect:    result.Correct,
		DurationMs:   durationMs,
		PointsEarned: points,
	})
	if err != nil {
		return 0, err
	}
	return points, nil
}

// calculatePoints scores a correct word from difficulty and speed.
// basePoints = difficulty * 10, speedBonus = 50 - durationMs/100 clamped to
// [0, 50].
func calculatePoints(difficulty int, durationMs int64) int {
	basePoints := difficulty * 10

	speedBonus := 50 - int(durationMs/100)
	if speedBonus < 0 {
		speedBonus = 0
	}
	if speedBonus > 50 {
		speedBonus = 50
	}

	return basePoints + speedBonus
}

// selectWeightedWords picks count words, favouring ones the student gets
// wrong. Never-attempted words carry weight 0.7; attempted words range from
// 0.1 (always right) to 1.0 (always wrong). randFloat is injected so tests
// can drive the draw.
func selectWeightedWords(words []models.Word, stats []repository.WordStat, count int, randFloat func() float64) []models.Word {
	if count >= len(words) {
		return words
	}

	byWord := make(map[int64]repository.WordStat, len(stats))
	for _, st := range stats {
		byWord[st.WordID] = st
	}

	type weighted struct {
		word   models.Word
		weight float64
	}
	remaining := make([]weighted, 0, len(words))
	for _, w := range words {
		weight := 0.7
		if st, ok := byWord[w.ID]; ok && st.Attempts > 0 {
			weight = 1.0 - st.SuccessRate()*0.9
		}
		remaining = append(remaining, weighted{word: w, weight: weight})
	}

	selected := make([]models.Word, 0, count)
	for len(selected) < count {
		total := 0.0
		for _, ww := range remaining {
			total += ww.weight
		}
		target := randFloat() * total
		cum := 0.0
		pick := len(remaining) - 1
		for i, ww := range remaining {
			cum += ww.weight
			if target < cum {
				pick = i
				break
			}
		}
		selected = append(selected, remaining[pick].word)
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}
	return selected
}

// wordsToIDString joins word IDs into the stored comma-separated order
func wordsToIDString(words []models.Word) string {
	ids := make([]string, len(words))
	for i, w := range words {
		ids[i] = strconv.FormatInt(w.ID, 10)
	}
	return strings.Join(ids, ",")
}

// reorderWordsByIDs returns words in the stored order, dropping IDs that no
// longer exist. An empty order returns the words unchanged.
func reorderWordsByIDs(words []models.Word, idString string) []models.Word {
	if idString == "" {
		return words
	}
	byID := make(map[int64]models.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}

	var ordered []models.Word
	for _, part := range strings.Split(idString, ",") {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		if w, ok := byID[id]; ok {
			ordered = append(ordered, w)
		}
	}
	return ordered
}

func idStringContains(idString string, wordID int64) bool {
	want := strconv.FormatInt(wordID, 10)
	for _, part := range strings.Split(idString, ",") {
		if part == want {
			return true
		}
	}
	return false
}
