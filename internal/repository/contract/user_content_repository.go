package contract

import (
	"context"

	"github.com/google/uuid"
)

// UserContentRepository owns the full list of user-generated content tables.
// PurgeForUser is the single place that enumerates them; a new user-owned
// entity type is added there and nowhere else.
type UserContentRepository interface {
	PurgeForUser(ctx context.Context, userId uuid.UUID) error
}
