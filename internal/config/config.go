package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"workgen/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Data       DataConfig
	Session    SessionConfig
	Allocation AllocationConfig
	EDA        EDAConfig
	Profiling  ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional archive database. An empty URL disables
// archiving.
type DatabaseConfig struct {
	URL    string
	Driver string
}

// Enabled reports whether an archive database is configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// DataConfig holds upload and preview settings
type DataConfig struct {
	MaxUploadMB int
	PreviewRows int
	ExcelSheet  string
}

// MaxUploadBytes returns the upload limit in bytes
func (d DataConfig) MaxUploadBytes() int64 {
	return int64(d.MaxUploadMB) << 20
}

// SessionConfig holds session expiry settings
type SessionConfig struct {
	IdleTimeout   time.Duration
	SweepSchedule string
}

// AllocationConfig holds project sampling settings. Seed 0 seeds from the clock.
type AllocationConfig struct {
	Seed int64
}

// EDAConfig bounds the automated exploratory pass
type EDAConfig struct {
	MaxRows int
	MaxCols int
	Workers int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:     *loadServerConfig(),
		Database:   *loadDatabaseConfig(),
		Data:       *loadDataConfig(),
		Session:    *loadSessionConfig(),
		Allocation: *loadAllocationConfig(),
		EDA:        *loadEDAConfig(),
		Profiling:  *loadProfilingConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDatabaseConfig() *DatabaseConfig {
	url := getEnvOrDefault("DATABASE_URL", "")
	return &DatabaseConfig{
		URL:    url,
		Driver: getEnvOrDefault("DATABASE_DRIVER", detectDriver(url)),
	}
}

// detectDriver guesses the driver from the DSN scheme
func detectDriver(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		MaxUploadMB: getEnvIntOrDefault("MAX_UPLOAD_MB", 200),
		PreviewRows: getEnvIntOrDefault("PREVIEW_ROWS", 5),
		ExcelSheet:  getEnvOrDefault("EXCEL_SHEET", ""),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		IdleTimeout:   getEnvDurationOrDefault("SESSION_IDLE_TIMEOUT", 2*time.Hour),
		SweepSchedule: getEnvOrDefault("SESSION_SWEEP_SCHEDULE", "@every 10m"),
	}
}

func loadAllocationConfig() *AllocationConfig {
	return &AllocationConfig{
		Seed: int64(getEnvIntOrDefault("ALLOCATION_SEED", 0)),
	}
}

func loadEDAConfig() *EDAConfig {
	return &EDAConfig{
		MaxRows: getEnvIntOrDefault("EDA_MAX_ROWS", 150000),
		MaxCols: getEnvIntOrDefault("EDA_MAX_COLS", 30),
		Workers: getEnvIntOrDefault("EDA_WORKERS", 4),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if config.Database.Enabled() && config.Database.Driver != "postgres" && config.Database.Driver != "sqlite" {
		return errors.ConfigInvalid("DATABASE_DRIVER must be postgres or sqlite")
	}
	if config.Data.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.Session.IdleTimeout <= 0 {
		return errors.ConfigInvalid("SESSION_IDLE_TIMEOUT must be positive")
	}
	if config.EDA.Workers <= 0 {
		return errors.ConfigInvalid("EDA_WORKERS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
