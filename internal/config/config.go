package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Retention RetentionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SupportEmail       string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

// RetentionConfig holds the POPIA data-retention policy. The thresholds are
// pure configuration: validated once at startup, never a runtime error source.
type RetentionConfig struct {
	WarningThresholdDays  int    // inactivity before a retention warning is due
	GracePeriodDays       int    // time between warning and deletion eligibility
	AuditLogRetentionDays int    // how long retention audit entries are kept
	WarningSchedule       string // cron expression, daily warning sweep
	DeletionSchedule      string // cron expression, daily deletion sweep
	CleanupSchedule       string // cron expression, weekly log prune
	ActivityThrottle      time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			SupportEmail:       getEnv("SUPPORT_EMAIL", "support@hiking.com"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Hiking Portal"),
		},
		Retention: RetentionConfig{
			WarningThresholdDays:  getEnvAsInt("RETENTION_WARNING_THRESHOLD_DAYS", 3*365),
			GracePeriodDays:       getEnvAsInt("RETENTION_GRACE_PERIOD_DAYS", 90),
			AuditLogRetentionDays: getEnvAsInt("RETENTION_LOG_RETENTION_DAYS", 2*365),
			WarningSchedule:       getEnv("RETENTION_WARNING_SCHEDULE", "0 2 * * *"),
			DeletionSchedule:      getEnv("RETENTION_DELETION_SCHEDULE", "0 3 * * *"),
			CleanupSchedule:       getEnv("RETENTION_CLEANUP_SCHEDULE", "0 4 * * 0"),
			ActivityThrottle:      getEnvAsDuration("ACTIVITY_THROTTLE", time.Hour),
		},
	}
}

// Validate catches bad retention thresholds at startup. A misconfigured
// policy must fail the boot, not a sweep three years later.
func (c RetentionConfig) Validate() error {
	if c.WarningThresholdDays <= 0 {
		return fmt.Errorf("retention warning threshold must be positive, got %d", c.WarningThresholdDays)
	}
	if c.GracePeriodDays <= 0 {
		return fmt.Errorf("retention grace period must be positive, got %d", c.GracePeriodDays)
	}
	if c.AuditLogRetentionDays <= 0 {
		return fmt.Errorf("audit log retention must be positive, got %d", c.AuditLogRetentionDays)
	}
	return nil
}

// WarningThreshold returns the inactivity window as a duration.
func (c RetentionConfig) WarningThreshold() time.Duration {
	return time.Duration(c.WarningThresholdDays) * 24 * time.Hour
}

// GracePeriod returns the warning-to-deletion window as a duration.
func (c RetentionConfig) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodDays) * 24 * time.Hour
}

// AuditLogRetention returns the audit log horizon as a duration.
func (c RetentionConfig) AuditLogRetention() time.Duration {
	return time.Duration(c.AuditLogRetentionDays) * 24 * time.Hour
}

// IsInactiveEnough reports whether an account whose last recorded activity
// (or creation, when activity was never recorded) is lastSeen has crossed
// the warning threshold as of now.
func (c RetentionConfig) IsInactiveEnough(lastSeen, now time.Time) bool {
	return !lastSeen.After(now.Add(-c.WarningThreshold()))
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
