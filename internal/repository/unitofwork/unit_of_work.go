package unitofwork

import (
	"context"

	"hiking-portal-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PaymentRepository() contract.PaymentRepository
	UserContentRepository() contract.UserContentRepository
	RetentionLogRepository() contract.RetentionLogRepository
	NotificationLogRepository() contract.NotificationLogRepository
}
