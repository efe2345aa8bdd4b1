package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lomba-poster/internal/domain"
)

var ErrMissingConfig = errors.New("missing configuration")

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string
	CacheTTL time.Duration

	JWTSecret string
	JWTExpiry time.Duration

	AdminPasswordHash string
	JudgePasswordHash string

	CORSOrigins string

	LogLevel  string
	LogFormat string

	ModerationWordsPath string
	CommentMaxLength    int

	APIURL string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheTTL: getDurationEnv("CACHE_TTL", 5*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getDurationEnv("JWT_EXPIRY", 12*time.Hour),

		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JudgePasswordHash: getEnv("JUDGE_PASSWORD_HASH", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),

		ModerationWordsPath: getEnv("MODERATION_WORDS_PATH", ""),
		CommentMaxLength:    getIntEnv("COMMENT_MAX_LENGTH", domain.DefaultCommentMaxLength),

		APIURL: getEnv("API_URL", "http://localhost:8080"),
	}
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Validate reports the settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.AdminPasswordHash == "" {
		missing = append(missing, "ADMIN_PASSWORD_HASH")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	if c.CommentMaxLength < 1 {
		return fmt.Errorf("COMMENT_MAX_LENGTH must be positive, got %d", c.CommentMaxLength)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
