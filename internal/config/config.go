package config

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
)

// Config holds application configuration
type Config struct {
	Port          string
	LogLevel      string
	StatsSchedule string // cron spec; empty disables the stats reporter
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		StatsSchedule: getEnv("STATS_SCHEDULE", "@every 1m"),
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if cfg.StatsSchedule != "" {
		if _, err := cron.ParseStandard(cfg.StatsSchedule); err != nil {
			return nil, fmt.Errorf("invalid STATS_SCHEDULE %q: %w", cfg.StatsSchedule, err)
		}
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
