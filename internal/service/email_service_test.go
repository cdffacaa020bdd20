package service

import "testing"

func TestInvitationLink(t *testing.T) {
	tests := []struct {
		name string
		base string
		code string
		want string
	}{
		{"plain base", "https://vocab.example.com", "ABC123", "https://vocab.example.com/invitations/ABC123"},
		{"trailing slash", "https://vocab.example.com/", "ABC123", "https://vocab.example.com/invitations/ABC123"},
		{"local dev", "http://localhost:8080", "XY42ZQ", "http://localhost:8080/invitations/XY42ZQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewEmailService("us-east-1", "", tt.base)
			if err != nil {
				t.Fatalf("NewEmailService: %v", err)
			}
			if got := svc.invitationLink(tt.code); got != tt.want {
				t.Errorf("invitationLink(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestEmailServiceDisabledWithoutFromAddress(t *testing.T) {
	svc, err := NewEmailService("us-east-1", "", "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewEmailService: %v", err)
	}
	if svc.IsEnabled() {
		t.Error("service should be disabled without a from address")
	}
	// Sends are no-ops when disabled, never errors.
	if err := svc.SendInvitationEmail("t@example.com", "Ada", "Class 3B", "ABC123"); err != nil {
		t.Errorf("disabled send returned %v", err)
	}
}
