package models

import "time"

// WordSet represents a named collection of vocabulary words
type WordSet struct {
	ID         int64
	TeacherID  int64
	Name       string
	Difficulty int // 1 (easiest) to 5
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Word represents one vocabulary word in a set
type Word struct {
	ID        int64
	WordSetID int64
	Text      string
	Hint      string
	AudioPath string // cached TTS file, relative to the static root
	CreatedAt time.Time
}

// WordSetWithWords combines a word set with its words
type WordSetWithWords struct {
	WordSet WordSet
	Words   []Word
}
