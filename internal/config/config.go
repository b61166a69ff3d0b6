// Package config loads runtime configuration from the environment, with an
// optional .env file layered underneath.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime configuration for the review panel.
type Config struct {
	DBDriver        string
	DBPath          string
	DatabaseURL     string
	DownloadDir     string
	LogFile         string
	LogLevel        string
	MeetingBaseURL  string
	DateFormat      string
	UpdateTimeout   time.Duration
	RefreshInterval time.Duration
	ShortlistedOnly bool
	OTLPEndpoint    string
	ServiceName     string
}

// LoadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing default file is not an error.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv reads configuration from environment variables without
// validating it, so callers can layer overrides before calling Validate.
func FromEnv() Config {
	cfg := Config{
		DBDriver:        strings.ToLower(envOr("HIREPANEL_DB_DRIVER", DriverSQLite)),
		DBPath:          envOr("HIREPANEL_DB_PATH", defaultDBPath()),
		DatabaseURL:     envOr("DATABASE_URL", ""),
		DownloadDir:     envOr("HIREPANEL_DOWNLOAD_DIR", ""),
		LogFile:         envOr("HIREPANEL_LOG_FILE", defaultLogFile()),
		LogLevel:        envOr("HIREPANEL_LOG_LEVEL", "info"),
		MeetingBaseURL:  envOr("HIREPANEL_MEETING_BASE_URL", ""),
		DateFormat:      envOr("HIREPANEL_DATE_FORMAT", "Jan 2, 2006"),
		UpdateTimeout:   durationOr("HIREPANEL_UPDATE_TIMEOUT", 10*time.Second),
		RefreshInterval: durationOr("HIREPANEL_REFRESH_INTERVAL", 15*time.Second),
		ShortlistedOnly: boolOr("HIREPANEL_SHORTLISTED_ONLY", false),
		OTLPEndpoint:    envOr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:     envOr("OTEL_SERVICE_NAME", "hirepanel"),
	}
	if cfg.DBDriver == "pq" || cfg.DBDriver == "postgresql" {
		cfg.DBDriver = DriverPostgres
	}
	return cfg
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string
	switch c.DBDriver {
	case DriverMemory:
	case DriverSQLite:
		if c.DBPath == "" {
			problems = append(problems, "HIREPANEL_DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("HIREPANEL_DB_DRIVER %q must be one of memory, sqlite, postgres", c.DBDriver))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("HIREPANEL_LOG_LEVEL %q is not a log level", c.LogLevel))
	}
	if c.UpdateTimeout <= 0 {
		problems = append(problems, "HIREPANEL_UPDATE_TIMEOUT must be positive")
	}
	if c.RefreshInterval < 0 {
		problems = append(problems, "HIREPANEL_REFRESH_INTERVAL must not be negative")
	}
	if c.DateFormat == "" {
		problems = append(problems, "HIREPANEL_DATE_FORMAT must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func defaultDBPath() string {
	return filepath.Join(stateDir(), "applications.db")
}

func defaultLogFile() string {
	return filepath.Join(stateDir(), "hirepanel.log")
}

func stateDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".hirepanel")
	}
	return ".hirepanel"
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func boolOr(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		switch strings.ToLower(value) {
		case "yes", "y", "on":
			return true
		case "no", "n", "off":
			return false
		}
		return fallback
	}
	return parsed
}
