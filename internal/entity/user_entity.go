// FILE: internal/entity/user_entity.go
package entity

import (
	"fmt"
	"time"

	"hiking-portal-be/internal/constant"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleMember UserRole = "member"
	UserRoleAdmin  UserRole = "admin"

	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusArchived UserStatus = "archived"
	UserStatusDeleted  UserStatus = "deleted"
)

// IsTerminal reports whether the status ends the retention lifecycle. A
// terminal account is never a warning or deletion candidate again.
func (s UserStatus) IsTerminal() bool {
	return s == UserStatusDeleted || s == UserStatusArchived
}

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Phone        *string
	Role         UserRole
	Status       UserStatus

	// Member profile fields scrubbed on erasure.
	AvatarURL         *string
	EmergencyContact  *string
	MedicalConditions *string
	DietaryNotes      *string

	// Retention lifecycle fields. WarningSentAt and ScheduledDeletionAt are
	// set together in one transaction and only ever non-null as a pair.
	LastActiveAt        *time.Time
	WarningSentAt       *time.Time
	ScheduledDeletionAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastSeen returns the anchor for inactivity calculations: the last recorded
// activity, falling back to account creation when none was ever recorded.
func (u *User) LastSeen() time.Time {
	if u.LastActiveAt != nil {
		return *u.LastActiveAt
	}
	return u.CreatedAt
}

// RetentionConsistent reports whether the warning timestamp and the
// deletion deadline are either both set or both clear.
func (u *User) RetentionConsistent() bool {
	return (u.WarningSentAt == nil) == (u.ScheduledDeletionAt == nil)
}

// AnonymizedEmail returns the stable synthetic address written over the
// member's real one on erasure.
func (u *User) AnonymizedEmail() string {
	return fmt.Sprintf("deleted-user-%s@%s", u.Id, constant.AnonymizedEmailDomain)
}
