// FILE: internal/entity/retention_log_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RetentionLog is one append-only audit entry for a lifecycle action.
// Entries are created once, never updated, and only removed by the weekly
// age-based prune.
type RetentionLog struct {
	Id          uuid.UUID
	UserId      *uuid.UUID // nil for system-level entries
	Action      string     // constant.RetentionAction*
	Reason      string
	Metadata    map[string]interface{}
	PerformedBy string // constant.PerformedBySystem or "admin:<uuid>"
	CreatedAt   time.Time
}
