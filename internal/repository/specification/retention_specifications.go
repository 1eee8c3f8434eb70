package specification

import (
	"time"

	"hiking-portal-be/internal/entity"

	"gorm.io/gorm"
)

// NonTerminalStatus keeps only accounts still inside the retention lifecycle.
type NonTerminalStatus struct{}

func (s NonTerminalStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status NOT IN ?", []string{
		string(entity.UserStatusDeleted),
		string(entity.UserStatusArchived),
	})
}

// WarningDue selects accounts whose inactivity crossed the threshold and that
// have not yet entered the warned state. Cutoff is now minus the warning
// threshold.
type WarningDue struct {
	Cutoff time.Time
}

func (s WarningDue) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where("((last_active_at IS NULL AND created_at <= ?) OR last_active_at <= ?)", s.Cutoff, s.Cutoff).
		Where("retention_warning_sent_at IS NULL").
		Where("scheduled_deletion_at IS NULL")
}

// DeletionDue selects warned accounts whose grace period has elapsed.
type DeletionDue struct {
	Now time.Time
}

func (s DeletionDue) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Where("scheduled_deletion_at IS NOT NULL").
		Where("scheduled_deletion_at <= ?", s.Now)
}

// OldestInactivityFirst orders by the inactivity anchor so a crashed partial
// sweep resumes roughly where it stopped.
type OldestInactivityFirst struct{}

func (s OldestInactivityFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("COALESCE(last_active_at, created_at) ASC")
}

// CreatedBefore filters rows older than the given instant.
type CreatedBefore struct {
	Before time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Before)
}
