package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hiking-portal-be/internal/config"
	"hiking-portal-be/internal/pkg/logger"
	"hiking-portal-be/internal/service"

	"github.com/robfig/cron/v3"
)

// RetentionScheduler drives the three retention cadences: the daily warning
// sweep, the daily deletion sweep and the weekly audit log prune. It is
// designed for a single-instance deployment; running two schedulers against
// the same database would double-send warnings.
type RetentionScheduler struct {
	retention service.IRetentionService
	policy    config.RetentionConfig
	logger    logger.ILogger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
	// gen increments on every Start so a context watcher left over from an
	// earlier Start cannot stop a later cron instance.
	gen int
}

func NewRetentionScheduler(retention service.IRetentionService, policy config.RetentionConfig, log logger.ILogger) *RetentionScheduler {
	return &RetentionScheduler{
		retention: retention,
		policy:    policy,
		logger:    log,
	}
}

// Start registers the three cadences and starts the cron runner. Invalid
// cron expressions fail here, before anything is scheduled.
func (s *RetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	schedules := []struct {
		name string
		expr string
		run  func()
	}{
		{"retention warnings", s.policy.WarningSchedule, func() {
			s.retention.ProcessRetentionWarnings(ctx)
		}},
		{"scheduled deletions", s.policy.DeletionSchedule, func() {
			s.retention.ProcessScheduledDeletions(ctx)
		}},
		{"log cleanup", s.policy.CleanupSchedule, func() {
			_, _ = s.retention.CleanupOldLogs(ctx)
		}},
	}

	for _, sched := range schedules {
		if _, err := cron.ParseStandard(sched.expr); err != nil {
			return fmt.Errorf("invalid cron schedule %q for %s: %w", sched.expr, sched.name, err)
		}
	}

	// A fresh cron instance per Start so a stopped scheduler can be started
	// again without accumulating duplicate entries.
	c := cron.New()
	for _, sched := range schedules {
		name := sched.name
		run := sched.run
		if _, err := c.AddFunc(sched.expr, func() {
			s.logger.Info("RetentionScheduler", fmt.Sprintf("Running scheduled %s sweep", name), nil)
			run()
		}); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", sched.name, err)
		}
	}

	c.Start()
	s.cron = c
	s.running = true
	s.gen++
	gen := s.gen

	s.logger.Info("RetentionScheduler", "Retention scheduler started", map[string]interface{}{
		"warning_schedule":  s.policy.WarningSchedule,
		"deletion_schedule": s.policy.DeletionSchedule,
		"cleanup_schedule":  s.policy.CleanupSchedule,
	})

	go func() {
		<-ctx.Done()
		s.stopGeneration(gen)
	}()

	return nil
}

// Stop halts the cron runner and waits for any in-flight sweep to finish.
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// stopGeneration stops the runner only if it still belongs to the Start that
// spawned the caller. A cancellation of an old Start's context is ignored.
func (s *RetentionScheduler) stopGeneration(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return
	}
	s.stopLocked()
}

func (s *RetentionScheduler) stopLocked() {
	if s.cron == nil || !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("RetentionScheduler", "Retention scheduler stopped", nil)
}

// IsRunning reports whether the cadences are active.
func (s *RetentionScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the earliest upcoming cadence, or nil when stopped.
func (s *RetentionScheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil || !s.running {
		return nil
	}

	var next *time.Time
	for _, entry := range s.cron.Entries() {
		t := entry.Next
		if t.IsZero() {
			continue
		}
		if next == nil || t.Before(*next) {
			next = &t
		}
	}
	return next
}
