package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/kanjiflash/internal/answer"
	"github.com/vytor/kanjiflash/internal/logger"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	AccentDBPath      string
	StreakDebounce    time.Duration
	OverdueThreshold  int
	NearMatchPolicy   string
	ImportWorkerCount int
	ImportQueueSize   int
	StreakRefreshAt   string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or unparsable.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:kanjiflash.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		AccentDBPath:      envOr("ACCENT_DB_PATH", ""),
		StreakDebounce:    time.Duration(envIntOr("STREAK_DEBOUNCE_MS", 300)) * time.Millisecond,
		OverdueThreshold:  envIntOr("OVERDUE_THRESHOLD", 20),
		NearMatchPolicy:   envOr("NEAR_MATCH_POLICY", "retry"),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 1),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 8),
		StreakRefreshAt:   envOr("STREAK_REFRESH_AT", "00:00"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.AccentDBPath != "" {
		if _, err := os.Stat(c.AccentDBPath); err != nil {
			errs = append(errs, fmt.Errorf("ACCENT_DB_PATH: %w", err))
		}
	}
	if c.StreakDebounce < 0 {
		errs = append(errs, fmt.Errorf("STREAK_DEBOUNCE_MS must not be negative, got %d", c.StreakDebounce.Milliseconds()))
	}
	if c.OverdueThreshold < 1 || c.OverdueThreshold > 100 {
		errs = append(errs, fmt.Errorf("OVERDUE_THRESHOLD must be between 1 and 100, got %d", c.OverdueThreshold))
	}
	if _, err := answer.ParsePolicy(c.NearMatchPolicy); err != nil {
		errs = append(errs, fmt.Errorf("NEAR_MATCH_POLICY: %w", err))
	}
	if c.ImportWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_WORKER_COUNT must be at least 1, got %d", c.ImportWorkerCount))
	}
	if c.ImportQueueSize < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_QUEUE_SIZE must be at least 1, got %d", c.ImportQueueSize))
	}
	if _, err := time.Parse("15:04", c.StreakRefreshAt); err != nil {
		errs = append(errs, fmt.Errorf("STREAK_REFRESH_AT must be HH:MM, got %q", c.StreakRefreshAt))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
