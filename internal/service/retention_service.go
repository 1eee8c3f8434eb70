package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hiking-portal-be/internal/config"
	"hiking-portal-be/internal/constant"
	"hiking-portal-be/internal/dto"
	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/pkg/clock"
	"hiking-portal-be/internal/pkg/logger"
	"hiking-portal-be/internal/repository/specification"
	"hiking-portal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// IRetentionService is the POPIA account-lifecycle engine: inactivity
// warnings, grace-period deletions, admin extensions, audit logging and
// statistics. All retention-field mutation in the system goes through here.
type IRetentionService interface {
	ProcessRetentionWarnings(ctx context.Context) dto.BatchOutcome
	ProcessScheduledDeletions(ctx context.Context) dto.BatchOutcome
	CleanupOldLogs(ctx context.Context) (int64, error)
	RunManualCheck(ctx context.Context) (*dto.ManualCheckResponse, error)
	GetRetentionStatistics(ctx context.Context) (*dto.RetentionStatisticsResponse, error)
	ExtendRetention(ctx context.Context, userId uuid.UUID, req dto.ExtendRetentionRequest, adminId uuid.UUID) (*dto.ExtendRetentionResponse, error)
	GetRetentionLogs(ctx context.Context, userId *uuid.UUID, action string, limit, offset int) (*dto.RetentionLogListResponse, error)
	GetUserRetentionStatus(ctx context.Context, userId uuid.UUID) (*dto.UserRetentionStatusResponse, error)
}

type retentionService struct {
	uowFactory unitofwork.RepositoryFactory
	notifier   INotificationService
	policy     config.RetentionConfig
	clk        clock.Clock
	logger     logger.ILogger
}

func NewRetentionService(
	uowFactory unitofwork.RepositoryFactory,
	notifier INotificationService,
	policy config.RetentionConfig,
	clk clock.Clock,
	log logger.ILogger,
) IRetentionService {
	return &retentionService{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     policy,
		clk:        clk,
		logger:     log,
	}
}

// ProcessRetentionWarnings sweeps warning-due accounts. Candidates are
// processed sequentially, one transaction each, so a single failure cannot
// block the rest of the batch. The batch itself never fails: per-candidate
// errors become result data.
func (s *retentionService) ProcessRetentionWarnings(ctx context.Context) dto.BatchOutcome {
	now := s.clk.Now()
	cutoff := now.Add(-s.policy.WarningThreshold())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := uow.UserRepository().FindWarningCandidates(ctx, cutoff)
	if err != nil {
		s.logger.Error("RetentionService", "Failed to select warning candidates", map[string]interface{}{"error": err.Error()})
		return dto.BatchOutcome{}
	}

	s.logger.Info("RetentionService", "Starting retention warnings sweep", map[string]interface{}{
		"candidates": len(candidates),
	})

	outcome := dto.BatchOutcome{Attempted: len(candidates)}
	for _, user := range candidates {
		if err := s.warnCandidate(ctx, user); err != nil {
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, dto.BatchFailure{
				UserId: user.Id,
				Email:  user.Email,
				Error:  err.Error(),
			})
			s.logger.Error("RetentionService", "Failed to process retention warning", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   err.Error(),
			})
			continue
		}
		outcome.Succeeded++
		s.logger.Info("RetentionService", "Retention warning sent", map[string]interface{}{
			"user_id": user.Id.String(),
			"email":   user.Email,
		})
	}

	s.logger.Info("RetentionService", "Retention warnings sweep completed", map[string]interface{}{
		"succeeded": outcome.Succeeded,
		"failed":    outcome.Failed,
	})
	return outcome
}

func (s *retentionService) warnCandidate(ctx context.Context, user *entity.User) error {
	now := s.clk.Now()
	deletionDeadline := now.Add(s.policy.GracePeriod())

	// The warning must be confirmed sent before any state changes: an
	// account must never be marked warned on the strength of an email that
	// never left. A send failure aborts this candidate only; the selector
	// picks it up again next sweep.
	if err := s.notifier.SendRetentionWarning(ctx, user, deletionDeadline); err != nil {
		return fmt.Errorf("send warning: %w", err)
	}

	// If the transaction below fails the email has already gone out. That is
	// the accepted at-least-once tradeoff: a duplicate warning on the next
	// sweep beats an account that was never warned but is counted as warned.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	if err := uow.UserRepository().MarkWarned(ctx, user.Id, now, deletionDeadline); err != nil {
		_ = uow.Rollback()
		return err
	}

	userId := user.Id
	metadata := map[string]interface{}{
		"warning_sent_at":       now.UTC().Format(time.RFC3339),
		"scheduled_deletion_at": deletionDeadline.UTC().Format(time.RFC3339),
		"grace_period_days":     s.policy.GracePeriodDays,
	}
	if user.LastActiveAt != nil {
		metadata["last_active_at"] = user.LastActiveAt.UTC().Format(time.RFC3339)
	}
	logEntry := &entity.RetentionLog{
		UserId:      &userId,
		Action:      constant.RetentionActionWarningSent,
		Reason:      constant.RetentionReasonInactivityWarning,
		Metadata:    metadata,
		PerformedBy: constant.PerformedBySystem,
		CreatedAt:   now,
	}
	if err := uow.RetentionLogRepository().Create(ctx, logEntry); err != nil {
		_ = uow.Rollback()
		return err
	}

	return uow.Commit()
}

// ProcessScheduledDeletions sweeps accounts whose grace period has elapsed
// and irreversibly erases them. Unlike the warning flow there is no external
// side effect, so each candidate is strictly all-or-nothing.
func (s *retentionService) ProcessScheduledDeletions(ctx context.Context) dto.BatchOutcome {
	now := s.clk.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := uow.UserRepository().FindDeletionCandidates(ctx, now)
	if err != nil {
		s.logger.Error("RetentionService", "Failed to select deletion candidates", map[string]interface{}{"error": err.Error()})
		return dto.BatchOutcome{}
	}

	s.logger.Info("RetentionService", "Starting scheduled deletions sweep", map[string]interface{}{
		"candidates": len(candidates),
	})

	outcome := dto.BatchOutcome{Attempted: len(candidates)}
	for _, user := range candidates {
		if !user.RetentionConsistent() {
			// An inconsistent warned/scheduled pair means some write bypassed
			// the engine. Deleting on top of that could destroy evidence of
			// the bug, so report and leave the row for investigation.
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, dto.BatchFailure{
				UserId: user.Id,
				Error:  "retention fields inconsistent: warning timestamp and deletion deadline must be set together",
			})
			s.logger.Error("RetentionService", "Retention field anomaly detected, skipping deletion", map[string]interface{}{
				"user_id": user.Id.String(),
			})
			continue
		}

		if err := s.deleteCandidate(ctx, user); err != nil {
			outcome.Failed++
			outcome.Failures = append(outcome.Failures, dto.BatchFailure{
				UserId: user.Id,
				Email:  user.Email,
				Error:  err.Error(),
			})
			s.logger.Error("RetentionService", "Failed to delete user data", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   err.Error(),
			})
			continue
		}
		outcome.Succeeded++
		s.logger.Info("RetentionService", "User data deleted", map[string]interface{}{
			"user_id": user.Id.String(),
		})
	}

	s.logger.Info("RetentionService", "Scheduled deletions sweep completed", map[string]interface{}{
		"succeeded": outcome.Succeeded,
		"failed":    outcome.Failed,
	})
	return outcome
}

func (s *retentionService) deleteCandidate(ctx context.Context, user *entity.User) error {
	now := s.clk.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	// 1. Payment rows survive anonymized: the numbers stay for tax and audit
	// obligations, the identity does not.
	if _, err := uow.PaymentRepository().AnonymizeForUser(ctx, user.Id, user.AnonymizedEmail(), now); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("anonymize payments: %w", err)
	}

	// 2. Everything else the member generated is removed outright.
	if err := uow.UserContentRepository().PurgeForUser(ctx, user.Id); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("purge user content: %w", err)
	}

	// 3. The account row itself is kept as an anonymized tombstone. Clearing
	// the retention fields ends the lifecycle: a deleted account can never
	// re-enter a sweep.
	priorWarningSentAt := user.WarningSentAt
	priorDeadline := user.ScheduledDeletionAt

	user.Status = entity.UserStatusDeleted
	user.Email = user.AnonymizedEmail()
	user.FullName = constant.AnonymizedName
	user.Phone = nil
	user.PasswordHash = nil
	user.AvatarURL = nil
	user.EmergencyContact = nil
	user.MedicalConditions = nil
	user.DietaryNotes = nil
	user.LastActiveAt = nil
	user.WarningSentAt = nil
	user.ScheduledDeletionAt = nil
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("scrub account: %w", err)
	}

	// 4. Audit entry in the same transaction: either the account is fully
	// erased and logged, or nothing happened.
	userId := user.Id
	metadata := map[string]interface{}{
		"deletion_date":        now.UTC().Format(time.RFC3339),
		"grace_period_expired": true,
	}
	if priorWarningSentAt != nil {
		metadata["warning_sent_at"] = priorWarningSentAt.UTC().Format(time.RFC3339)
	}
	if priorDeadline != nil {
		metadata["scheduled_deletion_at"] = priorDeadline.UTC().Format(time.RFC3339)
	}
	logEntry := &entity.RetentionLog{
		UserId:      &userId,
		Action:      constant.RetentionActionDataDeleted,
		Reason:      constant.RetentionReasonPolicyDeletion,
		Metadata:    metadata,
		PerformedBy: constant.PerformedBySystem,
		CreatedAt:   now,
	}
	if err := uow.RetentionLogRepository().Create(ctx, logEntry); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("write audit entry: %w", err)
	}

	return uow.Commit()
}

// CleanupOldLogs prunes audit entries past the retention horizon. Best
// effort: the caller logs and moves on.
func (s *retentionService) CleanupOldLogs(ctx context.Context) (int64, error) {
	cutoff := s.clk.Now().Add(-s.policy.AuditLogRetention())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pruned, err := uow.RetentionLogRepository().DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("RetentionService", "Failed to prune retention logs", map[string]interface{}{"error": err.Error()})
		return 0, err
	}

	s.logger.Info("RetentionService", "Pruned old retention logs", map[string]interface{}{
		"pruned": pruned,
	})
	return pruned, nil
}

// RunManualCheck runs both sweeps synchronously and returns the resulting
// statistics, so an operator gets immediate feedback instead of waiting for
// the next cadence.
func (s *retentionService) RunManualCheck(ctx context.Context) (*dto.ManualCheckResponse, error) {
	warnings := s.ProcessRetentionWarnings(ctx)
	deletions := s.ProcessScheduledDeletions(ctx)

	stats, err := s.GetRetentionStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ManualCheckResponse{
		Warnings:   warnings,
		Deletions:  deletions,
		Statistics: *stats,
	}, nil
}

func (s *retentionService) GetRetentionStatistics(ctx context.Context) (*dto.RetentionStatisticsResponse, error) {
	now := s.clk.Now()
	cutoff := now.Add(-s.policy.WarningThreshold())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	users := uow.UserRepository()

	needingWarning, err := users.CountWarningDue(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	warned, err := users.CountWarnedPending(ctx, now)
	if err != nil {
		return nil, err
	}
	deletionDue, err := users.CountDeletionDue(ctx, now)
	if err != nil {
		return nil, err
	}
	deleted, err := users.CountByStatus(ctx, entity.UserStatusDeleted)
	if err != nil {
		return nil, err
	}
	recentActions, err := uow.RetentionLogRepository().CountActionsSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	return &dto.RetentionStatisticsResponse{
		UsersNeedingWarning:       needingWarning,
		UsersWithWarningsSent:     warned,
		UsersScheduledForDeletion: deletionDue,
		TotalDeletedUsers:         deleted,
		RecentActions:             recentActions,
	}, nil
}

// ExtendRetention moves an account's deletion deadline to now plus the given
// number of days and refreshes last_active_at: an explicit admin decision
// counts as evidence of continued relevance. Deliberately permissive about
// the account's current lifecycle position.
func (s *retentionService) ExtendRetention(ctx context.Context, userId uuid.UUID, req dto.ExtendRetentionRequest, adminId uuid.UUID) (*dto.ExtendRetentionResponse, error) {
	now := s.clk.Now()
	newDeadline := now.AddDate(0, 0, req.ExtensionDays)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	if err := uow.UserRepository().ExtendDeadline(ctx, userId, newDeadline, now); err != nil {
		_ = uow.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	logEntry := &entity.RetentionLog{
		UserId: &userId,
		Action: constant.RetentionActionRetentionExtended,
		Reason: req.Reason,
		Metadata: map[string]interface{}{
			"extension_days":    req.ExtensionDays,
			"new_deletion_date": newDeadline.UTC().Format(time.RFC3339),
			"extended_at":       now.UTC().Format(time.RFC3339),
		},
		PerformedBy: fmt.Sprintf("admin:%s", adminId),
		CreatedAt:   now,
	}
	if err := uow.RetentionLogRepository().Create(ctx, logEntry); err != nil {
		_ = uow.Rollback()
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("RetentionService", "Retention extended", map[string]interface{}{
		"user_id":        userId.String(),
		"extension_days": req.ExtensionDays,
		"admin_id":       adminId.String(),
	})

	return &dto.ExtendRetentionResponse{
		UserId:          userId,
		NewDeletionDate: newDeadline,
		ExtensionDays:   req.ExtensionDays,
	}, nil
}

func (s *retentionService) GetRetentionLogs(ctx context.Context, userId *uuid.UUID, action string, limit, offset int) (*dto.RetentionLogListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	filters := []specification.Specification{}
	if userId != nil {
		filters = append(filters, specification.ByUserID{UserID: *userId})
	}
	if action != "" {
		filters = append(filters, specification.Filter("action", action))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs := uow.RetentionLogRepository()

	total, err := logs.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	page := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	entries, err := logs.FindAll(ctx, page...)
	if err != nil {
		return nil, err
	}

	return &dto.RetentionLogListResponse{
		Logs:   toLogResponses(entries),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (s *retentionService) GetUserRetentionStatus(ctx context.Context, userId uuid.UUID) (*dto.UserRetentionStatusResponse, error) {
	now := s.clk.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !user.RetentionConsistent() {
		s.logger.Error("RetentionService", "Retention field anomaly detected on read", map[string]interface{}{
			"user_id": user.Id.String(),
		})
	}

	lastSeen := user.LastSeen()
	status := "active"
	var daysUntilDeletion *int
	switch {
	case user.ScheduledDeletionAt != nil && !user.ScheduledDeletionAt.After(now):
		status = "scheduled_for_deletion"
	case user.WarningSentAt != nil:
		status = "warning_sent"
	case s.policy.IsInactiveEnough(lastSeen, now):
		status = "warning_due"
	}
	if user.ScheduledDeletionAt != nil {
		days := int(user.ScheduledDeletionAt.Sub(now).Hours() / 24)
		daysUntilDeletion = &days
	}

	recent, err := uow.RetentionLogRepository().FindRecentForUser(ctx, userId, 10)
	if err != nil {
		return nil, err
	}

	return &dto.UserRetentionStatusResponse{
		UserId:            user.Id,
		Status:            status,
		LastActiveAt:      lastSeen,
		DaysSinceActive:   int(now.Sub(lastSeen).Hours() / 24),
		WarningSentAt:     user.WarningSentAt,
		ScheduledDeletion: user.ScheduledDeletionAt,
		DaysUntilDeletion: daysUntilDeletion,
		RecentActivity:    toLogResponses(recent),
	}, nil
}

func toLogResponses(entries []*entity.RetentionLog) []dto.RetentionLogResponse {
	result := make([]dto.RetentionLogResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, dto.RetentionLogResponse{
			Id:          e.Id,
			UserId:      e.UserId,
			Action:      e.Action,
			Reason:      e.Reason,
			Metadata:    e.Metadata,
			PerformedBy: e.PerformedBy,
			CreatedAt:   e.CreatedAt,
		})
	}
	return result
}
