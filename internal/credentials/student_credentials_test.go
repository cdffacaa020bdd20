package credentials

import (
	"strings"
	"testing"
)

func TestGeneratePasscode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		passcode, err := GeneratePasscode()
		if err != nil {
			t.Fatalf("GeneratePasscode() error = %v", err)
		}
		if len(passcode) != 4 {
			t.Errorf("passcode length = %d, want 4", len(passcode))
		}
		seen[passcode] = true
	}
	// 100 draws from 62^4 should essentially never all collide
	if len(seen) < 50 {
		t.Errorf("only %d unique passcodes in 100 draws", len(seen))
	}
}

func TestGenerateUsername(t *testing.T) {
	for i := 0; i < 50; i++ {
		username, err := GenerateUsername()
		if err != nil {
			t.Fatalf("GenerateUsername() error = %v", err)
		}
		parts := strings.Split(username, "-")
		if len(parts) != 2 {
			t.Fatalf("username %q is not adjective-noun", username)
		}
		if parts[0] == "" || parts[1] == "" {
			t.Errorf("username %q has an empty part", username)
		}
		if username != strings.ToLower(username) {
			t.Errorf("username %q is not lowercase", username)
		}
	}
}
