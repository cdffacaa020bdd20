// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	LogLevel        zerolog.Level
	StaticFilesPath string
	MigrationsPath  string

	// Public base URL of the deployment, used when building links that
	// leave the app (invitation emails).
	AppBaseURL string

	// Database. Type selects the dialect: "sqlite", "postgres" or "mysql".
	// Postgres and MySQL connect via URL; SQLite uses Path.
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Teacher auth
	SessionDuration    time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// Student auth
	JWTSecret   string
	TokenExpiry time.Duration

	// Word audio cache
	TTSCachePath string

	// AI proxy
	AIBaseURL     string
	AIAPIKey      string
	AIVisionModel string
	AIImageModel  string
	AITimeout     time.Duration

	// Email
	AWSRegion        string
	EmailFromAddress string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present; real
// environment variables win over .env entries.
func Load() *Config {
	godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./vocab.db"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),

		SessionDuration:    getDuration("SESSION_DURATION", 24*time.Hour),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", ""),

		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenExpiry: getDuration("TOKEN_EXPIRY", 12*time.Hour),

		TTSCachePath: getEnv("TTS_CACHE_PATH", "./static/audio"),

		AIBaseURL:     getEnv("AI_BASE_URL", "https://api.openai.com/v1"),
		AIAPIKey:      getEnv("AI_API_KEY", ""),
		AIVisionModel: getEnv("AI_VISION_MODEL", "gpt-4o-mini"),
		AIImageModel:  getEnv("AI_IMAGE_MODEL", "gpt-image-1"),
		AITimeout:     getDuration("AI_TIMEOUT", 60*time.Second),

		AWSRegion:        getEnv("AWS_REGION", "us-east-1"),
		EmailFromAddress: getEnv("EMAIL_FROM", ""),
	}
}

// Validate checks the settings the server cannot run without. Tokens and
// CSRF digests are signed with JWTSecret, so an empty value is refused
// rather than silently signing with an empty key.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration variable. Accepts Go duration syntax
// ("30m", "12h") or a bare number of seconds.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getInt reads an integer variable, falling back on missing or unparsable
// values
func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func parseLogLevel(value string) zerolog.Level {
	level, err := zerolog.ParseLevel(value)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
