package contract

import (
	"context"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Retention lifecycle. All mutation of the retention columns goes through
	// these methods so the warned/scheduled pair stays consistent.
	FindWarningCandidates(ctx context.Context, cutoff time.Time) ([]*entity.User, error)
	FindDeletionCandidates(ctx context.Context, now time.Time) ([]*entity.User, error)
	MarkWarned(ctx context.Context, id uuid.UUID, warnedAt, deletionAt time.Time) error
	ExtendDeadline(ctx context.Context, id uuid.UUID, deadline, lastActive time.Time) error
	UpdateLastActive(ctx context.Context, id uuid.UUID, t time.Time) error

	// Statistics
	CountWarningDue(ctx context.Context, cutoff time.Time) (int64, error)
	CountWarnedPending(ctx context.Context, now time.Time) (int64, error)
	CountDeletionDue(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, status entity.UserStatus) (int64, error)
}
