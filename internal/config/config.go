package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath       string
	Port               string
	Environment        string
	BaseURL            string
	AllowedOrigins     string
	SessionDuration    time.Duration
	MaxPhotoBytes      int64
	LogLevel           string
	MailgunDomain      string
	MailgunAPIKey      string
	MailgunSenderEmail string
	MailgunSenderName  string
}

func Load() *Config {
	// A missing .env file is not an error.
	godotenv.Load()

	cfg := &Config{
		DatabasePath:       getEnv("DATABASE_PATH", "cartly.db"),
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "production"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "http://localhost:8080"),
		SessionDuration:    getDurationEnv("SESSION_DURATION", 720*time.Hour),
		MaxPhotoBytes:      getInt64Env("MAX_PHOTO_BYTES", 5<<20),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		MailgunDomain:      getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:      getEnv("MAILGUN_API_KEY", ""),
		MailgunSenderEmail: getEnv("MAILGUN_SENDER_EMAIL", "no-reply@cartly.app"),
		MailgunSenderName:  getEnv("MAILGUN_SENDER_NAME", "Cartly"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
