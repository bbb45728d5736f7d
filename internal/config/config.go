package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDB
	TMDBAPIKey     string
	TMDBBaseURL    string
	TMDBRatePerSec float64 // provider requests per second (default: 4)

	// Cache
	CacheTTLHours int // search cache freshness window (default: 24)

	// Scheduler
	PopulateSchedule string // cron schedule for the bulk populate job, empty disables it

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/streamarr.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_RATE_PER_SEC", 4.0)
	viper.SetDefault("CACHE_TTL_HOURS", 24)
	viper.SetDefault("POPULATE_SCHEDULE", "")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "streamarr")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		TMDBAPIKey:     viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL:    viper.GetString("TMDB_BASE_URL"),
		TMDBRatePerSec: viper.GetFloat64("TMDB_RATE_PER_SEC"),

		CacheTTLHours: viper.GetInt("CACHE_TTL_HOURS"),

		PopulateSchedule: viper.GetString("POPULATE_SCHEDULE"),

		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile: filepath.Join(configDir, "streamarr.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if config.CacheTTLHours <= 0 {
		return nil, fmt.Errorf("CACHE_TTL_HOURS must be positive")
	}

	return config, nil
}
