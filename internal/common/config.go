package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Tracker     TrackerConfig  `toml:"tracker"`
	Reminder    ReminderConfig `toml:"reminder"`
	Storage     StorageConfig  `toml:"storage"`
	Logging     LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host" validate:"required"`
}

// TrackerConfig holds transport-level settings for the remote tracker.
// Base URL and credentials arrive per-connect from the foreground; only
// transport policy lives in config.
type TrackerConfig struct {
	Timeout     string `toml:"timeout" validate:"required"` // e.g. "30s" - per-request timeout
	InsecureTLS bool   `toml:"insecure_tls"`                // accept unverified certificates (explicit opt-in)
	RateLimit   int    `toml:"rate_limit" validate:"min=1"` // requests per second against the tracker
}

// ReminderConfig controls the daily worklog reminder.
type ReminderConfig struct {
	Enabled bool `toml:"enabled"`
	Hour    int  `toml:"hour" validate:"min=0,max=23"`   // local wall-clock hour
	Minute  int  `toml:"minute" validate:"min=0,max=59"` // local wall-clock minute
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs
}

// NewDefaultConfig returns the configuration defaults applied before any
// file, env, or flag overrides.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8090,
			Host: "localhost",
		},
		Tracker: TrackerConfig{
			Timeout:     "30s",
			InsecureTLS: false,
			RateLimit:   5,
		},
		Reminder: ReminderConfig{
			Enabled: true,
			Hour:    17,
			Minute:  0,
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier
// files; environment variables override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LOGBOOK_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("LOGBOOK_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("LOGBOOK_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Tracker configuration
	if timeout := os.Getenv("LOGBOOK_TRACKER_TIMEOUT"); timeout != "" {
		config.Tracker.Timeout = timeout
	}
	if insecure := os.Getenv("LOGBOOK_TRACKER_INSECURE_TLS"); insecure != "" {
		if b, err := strconv.ParseBool(insecure); err == nil {
			config.Tracker.InsecureTLS = b
		}
	}

	// Reminder configuration
	if enabled := os.Getenv("LOGBOOK_REMINDER_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.Reminder.Enabled = b
		}
	}
	if hour := os.Getenv("LOGBOOK_REMINDER_HOUR"); hour != "" {
		if h, err := strconv.Atoi(hour); err == nil {
			config.Reminder.Hour = h
		}
	}
	if minute := os.Getenv("LOGBOOK_REMINDER_MINUTE"); minute != "" {
		if m, err := strconv.Atoi(minute); err == nil {
			config.Reminder.Minute = m
		}
	}

	// Storage configuration
	if badgerPath := os.Getenv("LOGBOOK_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("LOGBOOK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("LOGBOOK_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("LOGBOOK_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration against struct constraints and
// cross-field rules that tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.ParseDuration(c.Tracker.Timeout); err != nil {
		return fmt.Errorf("invalid tracker timeout %q: %w", c.Tracker.Timeout, err)
	}

	return nil
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}
