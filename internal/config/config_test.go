package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.SessionDuration != 24*time.Hour {
		t.Errorf("SessionDuration = %v, want 24h", cfg.SessionDuration)
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.AppBaseURL != "http://localhost:8080" {
		t.Errorf("AppBaseURL = %q, want http://localhost:8080", cfg.AppBaseURL)
	}
	if cfg.DBMaxOpenConns != 25 || cfg.DBMaxIdleConns != 5 {
		t.Errorf("pool sizes = (%d, %d), want (25, 5)", cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/vocab")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_DURATION", "30m")
	t.Setenv("TOKEN_EXPIRY", "3600")

	cfg := Load()

	if cfg.ServerPort != "9000" {
		t.Errorf("ServerPort = %q, want 9000", cfg.ServerPort)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "postgres://localhost/vocab" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.SessionDuration != 30*time.Minute {
		t.Errorf("SessionDuration = %v, want 30m", cfg.SessionDuration)
	}
	if cfg.TokenExpiry != time.Hour {
		t.Errorf("TokenExpiry = %v, want 1h (bare seconds)", cfg.TokenExpiry)
	}
}

func TestAppBaseURLSeparateFromOAuthRedirect(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://vocab.example.com")
	t.Setenv("OAUTH_REDIRECT_URL", "https://vocab.example.com/api/auth/google/callback")

	cfg := Load()

	if cfg.AppBaseURL != "https://vocab.example.com" {
		t.Errorf("AppBaseURL = %q, want https://vocab.example.com", cfg.AppBaseURL)
	}
	if cfg.AppBaseURL == cfg.OAuthRedirectURL {
		t.Error("AppBaseURL must not track the OAuth callback URL")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted an empty JWT secret")
	}
	cfg.JWTSecret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate with a secret set: %v", err)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	if got := getInt("DB_MAX_OPEN_CONNS", 25); got != 50 {
		t.Errorf("getInt = %d, want 50", got)
	}
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	if got := getInt("DB_MAX_OPEN_CONNS", 25); got != 25 {
		t.Errorf("getInt with bad value = %d, want fallback 25", got)
	}
}

func TestGetDurationBadValue(t *testing.T) {
	t.Setenv("SESSION_DURATION", "not-a-duration")
	if got := getDuration("SESSION_DURATION", time.Hour); got != time.Hour {
		t.Errorf("getDuration = %v, want fallback 1h", got)
	}
}

func TestParseLogLevelUnknown(t *testing.T) {
	if got := parseLogLevel("shouty"); got != zerolog.InfoLevel {
		t.Errorf("parseLogLevel = %v, want info", got)
	}
}
