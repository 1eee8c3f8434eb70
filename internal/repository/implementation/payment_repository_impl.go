package implementation

import (
	"context"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/mapper"
	"hiking-portal-be/internal/model"
	"hiking-portal-be/internal/repository/contract"
	"hiking-portal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.HikePayment) error {
	modelPayment := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Create(modelPayment).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(modelPayment)
	return nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.HikePayment, error) {
	var modelPayments []*model.HikePayment
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelPayments).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelPayments), nil
}

func (r *PaymentRepositoryImpl) AnonymizeForUser(ctx context.Context, userId uuid.UUID, anonymizedEmail string, deletedAt time.Time) (int64, error) {
	// jsonb_set keeps whatever metadata the row carries and records when the
	// owning account was erased. Amount, currency and status stay untouched.
	result := r.db.WithContext(ctx).Model(&model.HikePayment{}).
		Where("user_id = ?", userId).
		Updates(map[string]interface{}{
			"user_email": anonymizedEmail,
			"metadata": gorm.Expr(
				`jsonb_set(COALESCE(metadata, '{}'), '{original_deleted_at}', to_jsonb(?::text))`,
				deletedAt.UTC().Format(time.RFC3339),
			),
		})
	return result.RowsAffected, result.Error
}
