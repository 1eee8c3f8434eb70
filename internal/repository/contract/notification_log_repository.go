package contract

import (
	"context"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/repository/specification"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, log *entity.NotificationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotificationLog, error)
}
