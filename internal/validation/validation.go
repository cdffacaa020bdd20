// Package validation checks user-supplied input before it reaches the
// services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	wordRegex  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z '\-]*$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a teacher password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateWordText checks a vocabulary word: letters, with internal spaces,
// hyphens or apostrophes allowed ("watering can", "jack-o'-lantern")
func ValidateWordText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationError{Field: "word", Message: "word is required"}
	}
	if len(text) > 64 {
		return ValidationError{Field: "word", Message: "word is too long"}
	}
	if !wordRegex.MatchString(text) {
		return ValidationError{Field: "word", Message: "word may only contain letters, spaces, hyphens and apostrophes"}
	}
	return nil
}

// ValidateDifficulty checks a word set difficulty level
func ValidateDifficulty(difficulty int) error {
	if difficulty < 1 || difficulty > 5 {
		return ValidationError{Field: "difficulty", Message: "difficulty must be between 1 and 5"}
	}
	return nil
}
