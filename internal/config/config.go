package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authentication
	JWTSecret       string        `env:"JWT_SECRET" required:"true"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" default:"24h"`
	ConfirmationTTL time.Duration `env:"CONFIRMATION_TTL" default:"24h"`

	// Throttling (redis is optional; an in-process limiter takes over without it)
	RedisURL       string        `env:"REDIS_URL"`
	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" default:"10"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" default:"1m"`

	// Mail (optional; codes are logged when no relay is configured)
	SMTPAddr string `env:"SMTP_ADDR"`
	SMTPFrom string `env:"SMTP_FROM" default:"noreply@reviewhub.local"`

	// Development
	LogLevel string `env:"LOG_LEVEL" default:"debug"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// If .env file doesn't exist, that's OK - system env vars still apply
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("Warning: .env file not found: %v\n", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AccessTokenTTL, "ACCESS_TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ConfirmationTTL, "CONFIRMATION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	// Throttling
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.AuthRateLimit, "AUTH_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.AuthRateWindow, "AUTH_RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	// Mail
	if err := loadEnvString(&config.SMTPAddr, "SMTP_ADDR", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.SMTPFrom, "SMTP_FROM", "noreply@reviewhub.local"); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	*target = parsed
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("environment variable %s must be a duration: %w", key, err)
	}
	*target = parsed
	return nil
}
