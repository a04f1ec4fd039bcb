package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken  string
	URLSecret string
	Database  DatabaseConfig
	Session   SessionConfig

	// TranscriptRetentionDays is how long chat transcripts are kept
	TranscriptRetentionDays int
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// SessionConfig holds persisted session settings
type SessionConfig struct {
	KeyPrefix string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	retention, err := getEnvInt("TRANSCRIPT_RETENTION_DAYS", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:  os.Getenv("BOT_TOKEN"),
		URLSecret: os.Getenv("URL_SECRET"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "labportal"),
			User:     getEnv("DB_USER", "labportal"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Session: SessionConfig{
			KeyPrefix: getEnv("SESSION_KEY_PREFIX", "persist:auth"),
		},
		TranscriptRetentionDays: retention,
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.URLSecret == "" {
		return nil, fmt.Errorf("URL_SECRET is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.TranscriptRetentionDays < 1 {
		return nil, fmt.Errorf("TRANSCRIPT_RETENTION_DAYS must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}
