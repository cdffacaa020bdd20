package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				TeacherID: 1,
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := session.IsExpired()
			if result != tt.want {
				t.Errorf("Session.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestInvitationIsValid(t *testing.T) {
	now := time.Now()
	used := now.Add(-1 * time.Hour)

	tests := []struct {
		name string
		inv  Invitation
		want bool
	}{
		{
			name: "fresh invitation",
			inv:  Invitation{ExpiresAt: now.Add(48 * time.Hour)},
			want: true,
		},
		{
			name: "expired",
			inv:  Invitation{ExpiresAt: now.Add(-1 * time.Minute)},
			want: false,
		},
		{
			name: "already used",
			inv:  Invitation{ExpiresAt: now.Add(48 * time.Hour), UsedAt: &used},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.inv.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegionContains(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		x, y   float64
		want   bool
	}{
		{
			name:   "point region centre hit",
			region: Region{Kind: RegionPoint, X: 100, Y: 100, Radius: 20},
			x:      100, y: 100,
			want: true,
		},
		{
			name:   "point region edge hit",
			region: Region{Kind: RegionPoint, X: 100, Y: 100, Radius: 20},
			x:      120, y: 100,
			want: true,
		},
		{
			name:   "point region miss",
			region: Region{Kind: RegionPoint, X: 100, Y: 100, Radius: 20},
			x:      121, y: 100,
			want: false,
		},
		{
			name:   "box region inside",
			region: Region{Kind: RegionBox, X: 10, Y: 10, Width: 50, Height: 30},
			x:      35, y: 25,
			want: true,
		},
		{
			name:   "box region corner",
			region: Region{Kind: RegionBox, X: 10, Y: 10, Width: 50, Height: 30},
			x:      60, y: 40,
			want: true,
		},
		{
			name:   "box region outside",
			region: Region{Kind: RegionBox, X: 10, Y: 10, Width: 50, Height: 30},
			x:      61, y: 25,
			want: false,
		},
		{
			name:   "unknown kind never matches",
			region: Region{Kind: "blob", X: 0, Y: 0, Radius: 1000},
			x:      0, y: 0,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestSpellSessionIsComplete(t *testing.T) {
	done := time.Now()
	if (&SpellSession{}).IsComplete() {
		t.Error("fresh session reported complete")
	}
	if !(&SpellSession{CompletedAt: &done}).IsComplete() {
		t.Error("finished session reported incomplete")
	}
}
