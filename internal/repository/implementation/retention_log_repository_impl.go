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

type RetentionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RetentionLogMapper
}

func NewRetentionLogRepository(db *gorm.DB) contract.RetentionLogRepository {
	return &RetentionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewRetentionLogMapper(),
	}
}

func (r *RetentionLogRepositoryImpl) Create(ctx context.Context, log *entity.RetentionLog) error {
	modelLog := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(modelLog).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(modelLog)
	return nil
}

func (r *RetentionLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetentionLog, error) {
	var modelLogs []*model.RetentionLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelLogs).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelLogs), nil
}

func (r *RetentionLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.RetentionLog{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RetentionLogRepositoryImpl) FindRecentForUser(ctx context.Context, userId uuid.UUID, limit int) ([]*entity.RetentionLog, error) {
	return r.FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
}

func (r *RetentionLogRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.RetentionLog{})
	return result.RowsAffected, result.Error
}

func (r *RetentionLogRepositoryImpl) CountActionsSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []struct {
		Action string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.RetentionLog{}).
		Select("action, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("action").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Action] = row.Count
	}
	return counts, nil
}
