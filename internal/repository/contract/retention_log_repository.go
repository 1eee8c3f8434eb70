package contract

import (
	"context"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RetentionLogRepository interface {
	Create(ctx context.Context, log *entity.RetentionLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetentionLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindRecentForUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.RetentionLog, error)

	// DeleteOlderThan is the only deletion path for audit entries. Returns
	// the number of pruned rows.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// CountActionsSince groups entry counts by action for the statistics
	// rolling window.
	CountActionsSince(ctx context.Context, since time.Time) (map[string]int64, error)
}
