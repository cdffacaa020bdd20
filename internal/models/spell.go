package models

import "time"

// SpellSession represents one run of a student through a word set
type SpellSession struct {
	ID           int64
	StudentID    int64
	WordSetID    int64
	WordIDs      string // comma-separated word order chosen for this run
	StartedAt    time.Time
	CompletedAt  *time.Time
	WordsTotal   int
	WordsCorrect int
	TotalPoints  int
}

func (s *SpellSession) IsComplete() bool {
	return s.CompletedAt != nil
}

// SpellAttempt records a single evaluated spelling of one word
type SpellAttempt struct {
	ID           int64
	SessionID    int64
	StudentID    int64
	WordID       int64
	Spelled      string
	IsCorrect    bool
	DurationMs   int64
	PointsEarned int
	AttemptedAt  time.Time
}

// Drawing records one drawing-based answer and what the recognizer made of it
type Drawing struct {
	ID          int64
	StudentID   int64
	WordID      int64
	ImagePath   string
	Guess       string
	IsMatch     bool
	SubmittedAt time.Time
}
