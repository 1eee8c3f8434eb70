package implementation

import (
	"context"

	"hiking-portal-be/internal/model"
	"hiking-portal-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserContentRepositoryImpl struct {
	db *gorm.DB
}

func NewUserContentRepository(db *gorm.DB) contract.UserContentRepository {
	return &UserContentRepositoryImpl{db: db}
}

// purgeTargets is the authoritative list of user-owned content tables removed
// on account erasure. New user-owned entity types get one entry here.
var purgeTargets = []interface{}{
	&model.Feedback{},
	&model.Suggestion{},
	&model.HikeInterest{},
	&model.Photo{},
	&model.NotificationLog{},
	&model.SigninLog{},
	&model.ActivityLog{},
	&model.LongLivedToken{},
}

func (r *UserContentRepositoryImpl) PurgeForUser(ctx context.Context, userId uuid.UUID) error {
	for _, target := range purgeTargets {
		if err := r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(target).Error; err != nil {
			return err
		}
	}
	return nil
}
