package implementation

import (
	"context"
	"errors"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/mapper"
	"hiking-portal-be/internal/model"
	"hiking-portal-be/internal/repository/contract"
	"hiking-portal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserMapper
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	if err := r.db.WithContext(ctx).Create(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	modelUser := r.mapper.ToModel(user)
	// Save writes every column, so nil-ing a personal field here genuinely
	// clears it in the row.
	if err := r.db.WithContext(ctx).Save(modelUser).Error; err != nil {
		return err
	}
	*user = *r.mapper.ToEntity(modelUser)
	return nil
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var modelUser model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelUser), nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var modelUsers []*model.User
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelUsers).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelUsers), nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.User{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepositoryImpl) FindWarningCandidates(ctx context.Context, cutoff time.Time) ([]*entity.User, error) {
	return r.FindAll(ctx,
		specification.WarningDue{Cutoff: cutoff},
		specification.NonTerminalStatus{},
		specification.OldestInactivityFirst{},
	)
}

func (r *UserRepositoryImpl) FindDeletionCandidates(ctx context.Context, now time.Time) ([]*entity.User, error) {
	return r.FindAll(ctx,
		specification.DeletionDue{Now: now},
		specification.NonTerminalStatus{},
		specification.OrderBy{Field: "scheduled_deletion_at"},
	)
}

func (r *UserRepositoryImpl) MarkWarned(ctx context.Context, id uuid.UUID, warnedAt, deletionAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"retention_warning_sent_at": warnedAt,
			"scheduled_deletion_at":     deletionAt,
		}).Error
}

func (r *UserRepositoryImpl) ExtendDeadline(ctx context.Context, id uuid.UUID, deadline, lastActive time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"scheduled_deletion_at": deadline,
			"last_active_at":        lastActive,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateLastActive(ctx context.Context, id uuid.UUID, t time.Time) error {
	// Terminal accounts never come back to life via activity.
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Where("status NOT IN ?", []string{
			string(entity.UserStatusDeleted),
			string(entity.UserStatusArchived),
		}).
		Update("last_active_at", t).Error
}

func (r *UserRepositoryImpl) CountWarningDue(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.Count(ctx,
		specification.WarningDue{Cutoff: cutoff},
		specification.NonTerminalStatus{},
	)
}

func (r *UserRepositoryImpl) CountWarnedPending(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("retention_warning_sent_at IS NOT NULL").
		Where("scheduled_deletion_at > ?", now).
		Where("status NOT IN ?", []string{
			string(entity.UserStatusDeleted),
			string(entity.UserStatusArchived),
		}).
		Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountDeletionDue(ctx context.Context, now time.Time) (int64, error) {
	return r.Count(ctx,
		specification.DeletionDue{Now: now},
		specification.NonTerminalStatus{},
	)
}

func (r *UserRepositoryImpl) CountByStatus(ctx context.Context, status entity.UserStatus) (int64, error) {
	return r.Count(ctx, specification.Filter("status", string(status)))
}
