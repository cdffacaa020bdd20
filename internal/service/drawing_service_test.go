package service

import "testing"

func TestDrawingMatches(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   bool
	}{
		{"exact match", "cat", "cat", true},
		{"case insensitive", "Cat", "cat", true},
		{"surrounding whitespace", "  cat \n", "cat", true},
		{"plural guess", "cats", "cat", true},
		{"plural target", "cat", "cats", true},
		{"different word", "dog", "cat", false},
		{"empty guess", "", "cat", false},
		{"empty target", "cat", "", false},
		{"not just a prefix", "caterpillar", "cat", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := drawingMatches(tt.guess, tt.target); got != tt.want {
				t.Errorf("drawingMatches(%q, %q) = %v, want %v", tt.guess, tt.target, got, tt.want)
			}
		})
	}
}
