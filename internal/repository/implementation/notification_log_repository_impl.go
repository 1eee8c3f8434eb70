package implementation

import (
	"context"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/model"
	"hiking-portal-be/internal/repository/contract"
	"hiking-portal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type NotificationLogRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) contract.NotificationLogRepository {
	return &NotificationLogRepositoryImpl{db: db}
}

func (r *NotificationLogRepositoryImpl) Create(ctx context.Context, log *entity.NotificationLog) error {
	modelLog := &model.NotificationLog{
		Id:        log.Id,
		UserId:    log.UserId,
		Type:      log.Type,
		Recipient: log.Recipient,
		Subject:   log.Subject,
		Status:    log.Status,
		Error:     log.Error,
		SentAt:    log.SentAt,
	}
	if err := r.db.WithContext(ctx).Create(modelLog).Error; err != nil {
		return err
	}
	log.Id = modelLog.Id
	log.SentAt = modelLog.SentAt
	return nil
}

func (r *NotificationLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NotificationLog, error) {
	var modelLogs []*model.NotificationLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelLogs).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.NotificationLog, 0, len(modelLogs))
	for _, m := range modelLogs {
		logs = append(logs, &entity.NotificationLog{
			Id:        m.Id,
			UserId:    m.UserId,
			Type:      m.Type,
			Recipient: m.Recipient,
			Subject:   m.Subject,
			Status:    m.Status,
			Error:     m.Error,
			SentAt:    m.SentAt,
		})
	}
	return logs, nil
}
