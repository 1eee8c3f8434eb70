package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetentionConfigValidate(t *testing.T) {
	valid := RetentionConfig{
		WarningThresholdDays:  1095,
		GracePeriodDays:       90,
		AuditLogRetentionDays: 730,
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*RetentionConfig)
	}{
		{"zero warning threshold", func(c *RetentionConfig) { c.WarningThresholdDays = 0 }},
		{"negative warning threshold", func(c *RetentionConfig) { c.WarningThresholdDays = -1 }},
		{"zero grace period", func(c *RetentionConfig) { c.GracePeriodDays = 0 }},
		{"negative audit retention", func(c *RetentionConfig) { c.AuditLogRetentionDays = -30 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRetentionConfigDurations(t *testing.T) {
	cfg := RetentionConfig{
		WarningThresholdDays:  1095,
		GracePeriodDays:       90,
		AuditLogRetentionDays: 730,
	}

	assert.Equal(t, 1095*24*time.Hour, cfg.WarningThreshold())
	assert.Equal(t, 90*24*time.Hour, cfg.GracePeriod())
	assert.Equal(t, 730*24*time.Hour, cfg.AuditLogRetention())
}

func TestIsInactiveEnough(t *testing.T) {
	cfg := RetentionConfig{WarningThresholdDays: 1095}
	now := time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC)
	threshold := cfg.WarningThreshold()

	// Exactly at the threshold counts as inactive.
	assert.True(t, cfg.IsInactiveEnough(now.Add(-threshold), now))
	assert.True(t, cfg.IsInactiveEnough(now.Add(-threshold-time.Second), now))
	assert.False(t, cfg.IsInactiveEnough(now.Add(-threshold+time.Second), now))
	assert.False(t, cfg.IsInactiveEnough(now, now))
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.NotNil(t, cfg)
	assert.Equal(t, 1095, cfg.Retention.WarningThresholdDays)
	assert.Equal(t, 90, cfg.Retention.GracePeriodDays)
	assert.Equal(t, 730, cfg.Retention.AuditLogRetentionDays)
	assert.Equal(t, "0 2 * * *", cfg.Retention.WarningSchedule)
	assert.Equal(t, "0 3 * * *", cfg.Retention.DeletionSchedule)
	assert.Equal(t, "0 4 * * 0", cfg.Retention.CleanupSchedule)
	assert.NoError(t, cfg.Retention.Validate())
}
