// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aristath/exportadvisor/internal/clients/blobstore"
	"github.com/aristath/exportadvisor/internal/scheduler"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for all databases (always absolute)
	LogLevel string
	Port     int
	DevMode  bool

	// Timezone drives the seasonal and winter rules. Empty means process-local time.
	Timezone string

	SnapshotSchedule    string // cron expressions with seconds field
	WALCheckSchedule    string
	MaintenanceSchedule string
	SeedSampleData      bool

	Blobstore blobstore.Config
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:             absDataDir,
		Port:                getEnvAsInt("PORT", 8080),
		DevMode:             getEnvAsBool("DEV_MODE", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Timezone:            getEnv("ADVISORY_TIMEZONE", ""),
		SnapshotSchedule:    getEnv("SNAPSHOT_SCHEDULE", "0 0 */6 * * *"),
		WALCheckSchedule:    getEnv("WAL_CHECK_SCHEDULE", "0 */30 * * * *"),
		MaintenanceSchedule: getEnv("MAINTENANCE_SCHEDULE", "0 0 3 * * SUN"),
		SeedSampleData:      getEnvAsBool("SEED_SAMPLE_DATA", true),
		Blobstore: blobstore.Config{
			Endpoint:       getEnv("S3_ENDPOINT", ""),
			Region:         getEnv("S3_REGION", "us-east-1"),
			Bucket:         getEnv("S3_BUCKET", ""),
			AccessKey:      getEnv("S3_ACCESS_KEY", ""),
			SecretKey:      getEnv("S3_SECRET_KEY", ""),
			UseSSL:         getEnvAsBool("S3_USE_SSL", true),
			ForcePathStyle: getEnvAsBool("S3_FORCE_PATH_STYLE", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration can be used to start the server
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if err := scheduler.ValidateSchedule(c.SnapshotSchedule); err != nil {
		return fmt.Errorf("SNAPSHOT_SCHEDULE: %w", err)
	}
	if err := scheduler.ValidateSchedule(c.WALCheckSchedule); err != nil {
		return fmt.Errorf("WAL_CHECK_SCHEDULE: %w", err)
	}
	if err := scheduler.ValidateSchedule(c.MaintenanceSchedule); err != nil {
		return fmt.Errorf("MAINTENANCE_SCHEDULE: %w", err)
	}
	if c.Blobstore.Enabled() {
		if err := c.Blobstore.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Location resolves Timezone; empty means time.Local
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ADVISORY_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DatabasePath returns the file path of a named database under DataDir
func (c *Config) DatabasePath(name string) string {
	return filepath.Join(c.DataDir, name+".db")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
