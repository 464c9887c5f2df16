// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration for channel lookups.
type Config struct {
	// APIKey is the YouTube Data API v3 key. Required.
	APIKey string `json:"api_key"`

	// MaxVideos is the number of latest uploads to list (default: 5)
	MaxVideos int `json:"max_videos"`

	// RequestTimeout bounds the API calls of a run; time spent at the prompt is not counted
	RequestTimeout time.Duration `json:"request_timeout"`

	// LogLevel is one of debug, info, warn, error (default: warn)
	LogLevel string `json:"log_level"`

	// Level is LogLevel parsed by Validate
	Level slog.Level `json:"-"`
}

// MaxVideosLimit is the largest page playlistItems.list serves.
const MaxVideosLimit = 50

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxVideos:      5,
		RequestTimeout: 30 * time.Second,
		LogLevel:       "warn",
		Level:          slog.LevelWarn,
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(configPaths()); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPaths() []string {
	return []string{
		"ytinfo.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytinfo", "ytinfo.json"),
	}
}

// loadFromFile loads the first config file found in paths.
func (c *Config) loadFromFile(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		var raw fileConfig
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if err := raw.apply(c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// fileConfig is the on-disk form; durations are Go duration strings ("45s").
type fileConfig struct {
	APIKey         *string `json:"api_key"`
	MaxVideos      *int    `json:"max_videos"`
	RequestTimeout *string `json:"request_timeout"`
	LogLevel       *string `json:"log_level"`
}

func (f fileConfig) apply(c *Config) error {
	if f.APIKey != nil {
		c.APIKey = *f.APIKey
	}
	if f.MaxVideos != nil {
		c.MaxVideos = *f.MaxVideos
	}
	if f.RequestTimeout != nil {
		d, err := time.ParseDuration(*f.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	return nil
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTINFO_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTINFO_MAX_VIDEOS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxVideos = n
		}
	}
	if v := os.Getenv("YTINFO_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("YTINFO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (set YTINFO_API_KEY or api_key in ytinfo.json)")
	}
	if c.MaxVideos < 1 || c.MaxVideos > MaxVideosLimit {
		return fmt.Errorf("max_videos must be between 1 and %d", MaxVideosLimit)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	level, err := c.SlogLevel()
	if err != nil {
		return err
	}
	c.Level = level
	return nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
