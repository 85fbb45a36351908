package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite, postgres or mysql
	DatabasePath    string // sqlite only
	DatabaseURL     string // postgres/mysql only
	MigrationsPath  string
	AudioFilesPath  string
	SessionDuration time.Duration

	// Admin login. The plaintext password mirrors the deployed app; a
	// bcrypt hash takes precedence when configured.
	AdminPassword     string
	AdminPasswordHash string

	// Token signing secret for identity and role cookies.
	TokenSecret string

	// Announcement email copies via SES. Disabled when FromEmail is empty.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	NotifyEmail  string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:        getEnv("PORT", "8080"),
		DatabaseType:      getEnv("DB_TYPE", "sqlite"),
		DatabasePath:      getEnv("DB_PATH", "./vocamaster.db"),
		DatabaseURL:       getEnv("DB_URL", ""),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "./migrations"),
		AudioFilesPath:    getEnv("AUDIO_PATH", "./static/audio"),
		SessionDuration:   24 * time.Hour,
		AdminPassword:     getEnv("ADMIN_PASSWORD", "0504"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		TokenSecret:       getEnv("TOKEN_SECRET", "dev-only-not-a-secret"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Vocamaster"),
		NotifyEmail:       getEnv("NOTIFY_EMAIL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
