package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the service.
type Config struct {
	DatabaseURL      string
	TelegramToken    string // optional; notifications go to the log when empty
	SweepInterval    time.Duration
	DispatchInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken:    strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		SweepInterval:    parseMinutes(strings.TrimSpace(os.Getenv("SWEEP_INTERVAL_MINUTES"))),
		DispatchInterval: parseMinutes(strings.TrimSpace(os.Getenv("DISPATCH_INTERVAL_MINUTES"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskflow.db"
	}

	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = 5 * time.Minute
	}

	if cfg.DispatchInterval == 0 {
		cfg.DispatchInterval = time.Minute
	}

	return cfg, nil
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	minutes, err := time.ParseDuration(raw + "m")
	if err != nil || minutes <= 0 {
		return 0
	}
	return minutes
}
