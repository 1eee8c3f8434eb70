package service

import (
	"context"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/pkg/logger"
	"hiking-portal-be/internal/pkg/mailer"
	"hiking-portal-be/internal/repository/unitofwork"
)

// INotificationService is the narrow notification contract the retention
// engine depends on. Any failure to deliver is a hard failure of the attempt.
type INotificationService interface {
	SendRetentionWarning(ctx context.Context, user *entity.User, deletionDate time.Time) error
}

type notificationService struct {
	mailer     mailer.IEmailService
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewNotificationService(mailer mailer.IEmailService, uowFactory unitofwork.RepositoryFactory, log logger.ILogger) INotificationService {
	return &notificationService{
		mailer:     mailer,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *notificationService) SendRetentionWarning(ctx context.Context, user *entity.User, deletionDate time.Time) error {
	err := s.mailer.SendRetentionWarning(user.Email, user.FullName, user.LastSeen(), deletionDate)

	status := entity.NotificationStatusSent
	var errText *string
	if err != nil {
		status = entity.NotificationStatusFailed
		msg := err.Error()
		errText = &msg
	}

	// The notification log is diagnostics, not part of the delivery contract:
	// a failed insert must not turn a delivered warning into a reported
	// failure.
	userId := user.Id
	logEntry := &entity.NotificationLog{
		UserId:    &userId,
		Type:      entity.NotificationTypeEmail,
		Recipient: user.Email,
		Subject:   "Important: Data Retention Notice - Action Required",
		Status:    status,
		Error:     errText,
		SentAt:    time.Now(),
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if logErr := uow.NotificationLogRepository().Create(ctx, logEntry); logErr != nil {
		s.logger.Warn("NotificationService", "Failed to record notification log", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   logErr.Error(),
		})
	}

	return err
}
