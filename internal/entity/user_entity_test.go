package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserStatusIsTerminal(t *testing.T) {
	assert.True(t, UserStatusDeleted.IsTerminal())
	assert.True(t, UserStatusArchived.IsTerminal())
	assert.False(t, UserStatusApproved.IsTerminal())
	assert.False(t, UserStatusPending.IsTerminal())
}

func TestLastSeenFallsBackToCreation(t *testing.T) {
	created := time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)
	u := &User{CreatedAt: created}

	assert.Equal(t, created, u.LastSeen())

	active := created.AddDate(1, 0, 0)
	u.LastActiveAt = &active
	assert.Equal(t, active, u.LastSeen())
}

func TestRetentionConsistent(t *testing.T) {
	now := time.Now()
	u := &User{}
	assert.True(t, u.RetentionConsistent())

	u.WarningSentAt = &now
	assert.False(t, u.RetentionConsistent())

	deadline := now.AddDate(0, 0, 90)
	u.ScheduledDeletionAt = &deadline
	assert.True(t, u.RetentionConsistent())

	u.WarningSentAt = nil
	assert.False(t, u.RetentionConsistent())
}

func TestAnonymizedEmailIsStablePerUser(t *testing.T) {
	u := &User{Id: uuid.MustParse("7f1e2a4c-0000-4000-8000-000000000042")}

	assert.Equal(t, "deleted-user-7f1e2a4c-0000-4000-8000-000000000042@anonymized.local", u.AnonymizedEmail())
	assert.Equal(t, u.AnonymizedEmail(), u.AnonymizedEmail())
}
