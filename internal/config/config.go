// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/domufi/analytics/internal/modules/analytics"
)

// Config holds application configuration
type Config struct {
	DataDir   string // Base directory for all databases (always absolute)
	LogLevel  string
	Port      int
	LogPretty bool
	DevMode   bool
	CacheTTL  time.Duration
	Analytics *AnalyticsConfig
	Scheduler *SchedulerConfig
	Backup    *BackupConfig
}

// AnalyticsConfig holds the engine options that can be tuned per deployment
type AnalyticsConfig struct {
	Timezone        string // IANA name; empty means the host's local zone
	DefaultROI      float64
	RiskFreeRate    float64
	SyntheticSeries bool
}

// ToEngineOptions converts the configuration into analytics engine options
func (c *AnalyticsConfig) ToEngineOptions() (analytics.Options, error) {
	opts := analytics.DefaultOptions()
	opts.DefaultROI = c.DefaultROI
	opts.RiskFreeRate = c.RiskFreeRate
	opts.SyntheticFallback = c.SyntheticSeries

	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return opts, fmt.Errorf("invalid ANALYTICS_TIMEZONE %q: %w", c.Timezone, err)
		}
		opts.Location = loc
	}
	return opts, nil
}

// SchedulerConfig holds cron specs for background jobs. An empty spec disables the job.
type SchedulerConfig struct {
	SnapshotSchedule string
	BackupSchedule   string
}

// BackupConfig configures ledger backups to S3-compatible storage
type BackupConfig struct {
	S3Bucket        string
	S3Prefix        string
	S3Region        string
	S3Endpoint      string // Custom endpoint for S3-compatible providers (R2, MinIO)
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether a bucket is configured
func (c *BackupConfig) Enabled() bool {
	return c != nil && c.S3Bucket != ""
}

// Load reads configuration from .env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DOMUFI_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:   absDataDir,
		Port:      getEnvAsInt("PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", false),
		DevMode:   getEnvAsBool("DEV_MODE", false),
		CacheTTL:  time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		Analytics: &AnalyticsConfig{
			Timezone:        getEnv("ANALYTICS_TIMEZONE", ""),
			DefaultROI:      getEnvAsFloat("DEFAULT_ROI", 10),
			RiskFreeRate:    getEnvAsFloat("RISK_FREE_RATE", 2),
			SyntheticSeries: getEnvAsBool("SYNTHETIC_SERIES", true),
		},
		Scheduler: &SchedulerConfig{
			SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 5 0 * * *"), // 00:05 daily
			BackupSchedule:   getEnv("BACKUP_SCHEDULE", "0 30 3 * * *"),  // 03:30 daily
		},
		Backup: &BackupConfig{
			S3Bucket:        getEnv("BACKUP_S3_BUCKET", ""),
			S3Prefix:        getEnv("BACKUP_S3_PREFIX", "domufi/"),
			S3Region:        getEnv("BACKUP_S3_REGION", "auto"),
			S3Endpoint:      getEnv("BACKUP_S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	if math.IsNaN(c.Analytics.DefaultROI) || math.IsInf(c.Analytics.DefaultROI, 0) {
		return fmt.Errorf("invalid DEFAULT_ROI")
	}
	if _, err := c.Analytics.ToEngineOptions(); err != nil {
		return err
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"SNAPSHOT_SCHEDULE": c.Scheduler.SnapshotSchedule,
		"BACKUP_SCHEDULE":   c.Scheduler.BackupSchedule,
	} {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, spec, err)
		}
	}

	return nil
}

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
