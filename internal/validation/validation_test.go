package validation

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "test@example.com", false},
		{"valid email with subdomain", "user@mail.example.com", false},
		{"valid email with plus", "user+tag@example.com", false},
		{"missing @", "testexample.com", true},
		{"missing domain", "test@", true},
		{"missing local part", "@example.com", true},
		{"empty string", "", true},
		{"spaces in email", "test @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "John Doe", false},
		{"single name", "John", false},
		{"empty name", "", true},
		{"name too short", "J", true},
		{"name with hyphen", "Mary-Jane", false},
		{"name with apostrophe", "O'Brien", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid password", "password123", false},
		{"password exactly 8 characters", "pass1234", false},
		{"password too short", "pass123", true},
		{"empty password", "", true},
		{"long password", "thisIsAVeryLongPasswordThatShouldBeValid123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWordText(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		wantErr bool
	}{
		{"plain word", "tree", false},
		{"capitalised word", "Tree", false},
		{"two words", "watering can", false},
		{"hyphenated", "jack-o'-lantern", false},
		{"empty", "", true},
		{"digits", "tr33", true},
		{"punctuation", "tree!", true},
		{"leading space trimmed", "  bee  ", false},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWordText(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWordText(%q) error = %v, wantErr %v", tt.word, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDifficulty(t *testing.T) {
	for _, d := range []int{1, 3, 5} {
		if err := ValidateDifficulty(d); err != nil {
			t.Errorf("ValidateDifficulty(%d) = %v, want nil", d, err)
		}
	}
	for _, d := range []int{0, -1, 6} {
		if err := ValidateDifficulty(d); err == nil {
			t.Errorf("ValidateDifficulty(%d) = nil, want error", d)
		}
	}
}
