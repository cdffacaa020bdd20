package service

import (
	"testing"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
)

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int
		durationMs int64
		want       int
	}{
		{"instant answer max bonus", 3, 0, 80},
		{"fast answer", 3, 1000, 70},
		{"slow answer no bonus", 3, 5000, 30},
		{"very slow answer no bonus", 3, 60000, 30},
		{"easiest difficulty", 1, 2000, 40},
		{"hardest difficulty", 5, 2500, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculatePoints(tt.difficulty, tt.durationMs)
			if got != tt.want {
				t.Errorf("calculatePoints(%d, %d) = %d, want %d", tt.difficulty, tt.durationMs, got, tt.want)
			}
		})
	}
}

func TestWordsToIDString(t *testing.T) {
	tests := []struct {
		name     string
		words    []models.Word
		expected string
	}{
		{"empty slice", []models.Word{}, ""},
		{"single word", []models.Word{{ID: 1, Text: "cat"}}, "1"},
		{
			"multiple words",
			[]models.Word{{ID: 1, Text: "cat"}, {ID: 2, Text: "dog"}, {ID: 3, Text: "bird"}},
			"1,2,3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wordsToIDString(tt.words); got != tt.expected {
				t.Errorf("wordsToIDString() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReorderWordsByIDs(t *testing.T) {
	words := []models.Word{
		{ID: 1, Text: "cat"},
		{ID: 2, Text: "dog"},
		{ID: 3, Text: "bird"},
	}

	tests := []struct {
		name     string
		idString string
		expected []string
	}{
		{"empty string returns original order", "", []string{"cat", "dog", "bird"}},
		{"reorder words", "3,1,2", []string{"bird", "cat", "dog"}},
		{"partial order", "2,3", []string{"dog", "bird"}},
		{"unknown id ignored", "1,99,2", []string{"cat", "dog"}},
		{"garbage ignored", "1,x,3", []string{"cat", "bird"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reorderWordsByIDs(words, tt.idString)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d words, want %d", len(got), len(tt.expected))
			}
			for i, w := range got {
				if w.Text != tt.expected[i] {
					t.Errorf("word[%d] = %q, want %q", i, w.Text, tt.expected[i])
				}
			}
		})
	}
}

func TestSelectWeightedWordsFavoursStrugglers(t *testing.T) {
	words := []models.Word{
		{ID: 1, Text: "easy"},
		{ID: 2, Text: "hard"},
		{ID: 3, Text: "new"},
	}
	stats := []repository.WordStat{
		{WordID: 1, Attempts: 10, Correct: 10}, // weight 0.1
		{WordID: 2, Attempts: 10, Correct: 0},  // weight 1.0
		// word 3 never attempted: weight 0.7
	}

	// Drawing at the very start of the cumulative range must pick the
	// heaviest word first when it sorts first; with insertion order the
	// ranges are [0,0.1) easy, [0.1,1.1) hard, [1.1,1.8) new.
	got := selectWeightedWords(words, stats, 1, func() float64 { return 0.5 / 1.8 })
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("selected %+v, want the struggling word (id 2)", got)
	}

	got = selectWeightedWords(words, stats, 1, func() float64 { return 0.01 })
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("selected %+v, want id 1 for a draw inside its range", got)
	}
}

func TestSelectWeightedWordsCountAtLeastWords(t *testing.T) {
	words := []models.Word{{ID: 1}, {ID: 2}}
	got := selectWeightedWords(words, nil, 5, func() float64 { return 0 })
	if len(got) != 2 {
		t.Errorf("got %d words, want all 2 when count exceeds the set", len(got))
	}
}

func TestSelectWeightedWordsNoDuplicates(t *testing.T) {
	words := []models.Word{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}
	seq := []float64{0.9, 0.1, 0.5}
	i := 0
	got := selectWeightedWords(words, nil, 3, func() float64 {
		v := seq[i%len(seq)]
		i++
		return v
	})
	if len(got) != 3 {
		t.Fatalf("got %d words, want 3", len(got))
	}
	seen := make(map[int64]bool)
	for _, w := range got {
		if seen[w.ID] {
			t.Errorf("word %d selected twice", w.ID)
		}
		seen[w.ID] = true
	}
}

func TestIDStringContains(t *testing.T) {
	if !idStringContains("1,22,3", 22) {
		t.Error("idStringContains missed an id")
	}
	if idStringContains("1,22,3", 2) {
		t.Error("idStringContains matched a substring")
	}
}
