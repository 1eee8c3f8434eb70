package contract

import (
	"context"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.HikePayment) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HikePayment, error)

	// AnonymizeForUser overwrites the identifying fields of every ledger row
	// belonging to the user while keeping the financial content, and stamps
	// the metadata with the original deletion time. Returns rows touched.
	AnonymizeForUser(ctx context.Context, userId uuid.UUID, anonymizedEmail string, deletedAt time.Time) (int64, error)
}
