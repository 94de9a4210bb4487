// Package config reads onthi settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	Backend     string `validate:"oneof=sqlite redis memory"`
	DBPath      string // empty means the default data directory
	RedisURL    string `validate:"required_if=Backend redis"`
	RedisPrefix string
	BankPath    string `validate:"required"`
	LogLevel    string `validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat   string `validate:"oneof=pretty json"`
	// LogFile receives logs while the full-screen UI runs. Empty discards them.
	LogFile string
	// Seed fixes question sampling when non-zero.
	Seed int
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables with defaults. A .env
// file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Backend:     getEnv("ONTHI_BACKEND", BackendSQLite),
		DBPath:      getEnv("ONTHI_DB", ""),
		RedisURL:    getEnv("ONTHI_REDIS_URL", ""),
		RedisPrefix: getEnv("ONTHI_REDIS_PREFIX", "onthi:"),
		BankPath:    getEnv("ONTHI_BANK", "questions.json"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "pretty"),
		LogFile:     getEnv("ONTHI_LOG_FILE", ""),
		Seed:        getEnvInt("ONTHI_SEED", 0),
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
