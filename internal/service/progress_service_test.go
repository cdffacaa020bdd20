package service

import (
	"strings"
	"testing"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
	"github.com/akashdatta-hub/proto-vocab-25nov/internal/repository"
)

func TestStrugglingWords(t *testing.T) {
	stats := []repository.WordStat{
		{WordID: 1, Text: "mastered", Attempts: 10, Correct: 10},
		{WordID: 2, Text: "shaky", Attempts: 5, Correct: 2},
		{WordID: 3, Text: "untested", Attempts: 0, Correct: 0},
		{WordID: 4, Text: "barely", Attempts: 2, Correct: 0},
		{WordID: 5, Text: "borderline", Attempts: 5, Correct: 3},
	}

	got := strugglingWords(stats)
	if len(got) != 1 {
		t.Fatalf("got %d struggling words, want 1: %+v", len(got), got)
	}
	if got[0].Text != "shaky" {
		t.Errorf("struggling word = %q, want %q", got[0].Text, "shaky")
	}
}

func TestStrugglingWordsBoundary(t *testing.T) {
	// Exactly 60% success is not struggling; just under is
	ok := repository.WordStat{Attempts: 5, Correct: 3}
	if got := strugglingWords([]repository.WordStat{ok}); len(got) != 0 {
		t.Errorf("60%% success flagged as struggling")
	}
	bad := repository.WordStat{Attempts: 10, Correct: 5}
	if got := strugglingWords([]repository.WordStat{bad}); len(got) != 1 {
		t.Errorf("50%% success not flagged as struggling")
	}
}

func TestFormatSummaryEmail(t *testing.T) {
	summary := &StudentSummary{
		Student: &models.StudentWithStats{
			Student:       models.Student{DisplayName: "Maya"},
			TotalAttempts: 12,
			TotalCorrect:  9,
			TotalPoints:   340,
		},
		StrugglingWords: []repository.WordStat{
			{Text: "giraffe", Attempts: 4, Correct: 1},
		},
	}

	body := formatSummaryEmail(summary, "Animals")
	for _, want := range []string{"Maya", "Animals", "Attempts: 12", "giraffe (1 of 4 correct)"} {
		if !strings.Contains(body, want) {
			t.Errorf("summary email missing %q:\n%s", want, body)
		}
	}

	summary.StrugglingWords = nil
	body = formatSummaryEmail(summary, "Animals")
	if !strings.Contains(body, "Well done") {
		t.Errorf("summary email missing encouragement when nothing is struggling:\n%s", body)
	}
}
