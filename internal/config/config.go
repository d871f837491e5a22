package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Authorization
	SecretKey string `env:"SECRET_KEY" required:"true"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// .env is optional; system env vars still apply without it
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
	if err := loadEnvRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}
	if err := loadEnvRequired(&config.SecretKey, "SECRET_KEY"); err != nil {
		return nil, err
	}

	if config.HTTPPort < 1 || config.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP_PORT: %d", config.HTTPPort)
	}

	return config, nil
}

func loadEnvString(target *string, key, defaultValue string) error {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	*target = value
	return nil
}

func loadEnvRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	raw := os.Getenv(key)
	if raw == "" {
		*target = defaultValue
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q", key, raw)
	}
	*target = value
	return nil
}
