package service

import (
	"strings"
	"testing"

	"github.com/akashdatta-hub/proto-vocab-25nov/internal/models"
)

func TestBuildScenePrompt(t *testing.T) {
	words := []models.Word{
		{ID: 1, Text: "kite"},
		{ID: 2, Text: "bench"},
	}

	prompt := buildScenePrompt(words, "")
	if !strings.Contains(prompt, "kite, bench") {
		t.Errorf("prompt missing word list: %q", prompt)
	}
	if !strings.Contains(prompt, "cartoon illustration") {
		t.Errorf("prompt missing default style: %q", prompt)
	}

	prompt = buildScenePrompt(words, "a watercolour park scene")
	if !strings.Contains(prompt, "a watercolour park scene") {
		t.Errorf("prompt missing custom style: %q", prompt)
	}
	if strings.Contains(prompt, "cartoon illustration") {
		t.Errorf("default style leaked into custom prompt: %q", prompt)
	}
}
