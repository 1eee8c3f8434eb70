package scheduler

import (
	"context"
	"testing"
	"time"

	"hiking-portal-be/internal/config"
	"hiking-portal-be/internal/dto"
	"hiking-portal-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRetentionService struct{}

func (stubRetentionService) ProcessRetentionWarnings(ctx context.Context) dto.BatchOutcome {
	return dto.BatchOutcome{}
}

func (stubRetentionService) ProcessScheduledDeletions(ctx context.Context) dto.BatchOutcome {
	return dto.BatchOutcome{}
}

func (stubRetentionService) CleanupOldLogs(ctx context.Context) (int64, error) { return 0, nil }

func (stubRetentionService) RunManualCheck(ctx context.Context) (*dto.ManualCheckResponse, error) {
	return &dto.ManualCheckResponse{}, nil
}

func (stubRetentionService) GetRetentionStatistics(ctx context.Context) (*dto.RetentionStatisticsResponse, error) {
	return &dto.RetentionStatisticsResponse{}, nil
}

func (stubRetentionService) ExtendRetention(ctx context.Context, userId uuid.UUID, req dto.ExtendRetentionRequest, adminId uuid.UUID) (*dto.ExtendRetentionResponse, error) {
	return &dto.ExtendRetentionResponse{}, nil
}

func (stubRetentionService) GetRetentionLogs(ctx context.Context, userId *uuid.UUID, action string, limit, offset int) (*dto.RetentionLogListResponse, error) {
	return &dto.RetentionLogListResponse{}, nil
}

func (stubRetentionService) GetUserRetentionStatus(ctx context.Context, userId uuid.UUID) (*dto.UserRetentionStatusResponse, error) {
	return &dto.UserRetentionStatusResponse{}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) { return nil, nil }
func (nopLogger) GetLogById(string) (*logger.LogEntry, error)         { return nil, logger.ErrLogNotFound }

func validPolicy() config.RetentionConfig {
	return config.RetentionConfig{
		WarningThresholdDays:  1095,
		GracePeriodDays:       90,
		AuditLogRetentionDays: 730,
		WarningSchedule:       "0 2 * * *",
		DeletionSchedule:      "0 3 * * *",
		CleanupSchedule:       "0 4 * * 0",
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewRetentionScheduler(stubRetentionService{}, validPolicy(), nopLogger{})

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	require.NotNil(t, s.NextRun())

	// Start while running is a no-op.
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRun())

	// Restartable after a stop.
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	s.Stop()
}

func TestSchedulerRejectsInvalidCron(t *testing.T) {
	policy := validPolicy()
	policy.DeletionSchedule = "not a cron line"

	s := NewRetentionScheduler(stubRetentionService{}, policy, nopLogger{})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	s := NewRetentionScheduler(stubRetentionService{}, validPolicy(), nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerIgnoresStaleContextAfterRestart(t *testing.T) {
	s := NewRetentionScheduler(stubRetentionService{}, validPolicy(), nopLogger{})

	staleCtx, cancelStale := context.WithCancel(context.Background())
	require.NoError(t, s.Start(staleCtx))
	s.Stop()

	require.NoError(t, s.Start(context.Background()))
	require.True(t, s.IsRunning())

	// Cancelling the first Start's context must not stop the second run.
	cancelStale()
	time.Sleep(100 * time.Millisecond)
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
}
