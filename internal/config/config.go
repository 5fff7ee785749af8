package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/school-names/internal/logger"
)

const (
	envReferencePath = "SCHOOL_REFERENCE_PATH"
	envLogLevel      = "SCHOOL_LOG_LEVEL"
	envSheet         = "SCHOOL_SHEET"

	defaultReferencePath = "data/school_abbreviations_and_pictures.csv"
	defaultLogLevel      = logger.LevelInfo
)

type Config struct {
	ReferencePath string
	LogLevel      logger.Level
	Sheet         string
}

// Load reads settings from the environment after loading a .env file from the
// working directory, if one exists. Invalid values fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		ReferencePath: getEnv(envReferencePath, filepath.FromSlash(defaultReferencePath)),
		LogLevel:      defaultLogLevel,
		Sheet:         getEnv(envSheet, ""),
	}

	if raw := getEnv(envLogLevel, ""); raw != "" {
		if level, err := logger.ParseLevel(raw); err == nil {
			cfg.LogLevel = level
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
