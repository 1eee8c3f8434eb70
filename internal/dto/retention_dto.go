package dto

import (
	"time"

	"github.com/google/uuid"
)

// BatchFailure identifies one candidate that could not be processed. Failures
// are batch result data, not errors: the candidate stays selectable and is
// retried on the next sweep.
type BatchFailure struct {
	UserId uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Error  string    `json:"error"`
}

// BatchOutcome summarises one sweep of the warning or deletion processor.
type BatchOutcome struct {
	Attempted int            `json:"attempted"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Failures  []BatchFailure `json:"failures,omitempty"`
}

type RetentionStatisticsResponse struct {
	UsersNeedingWarning       int64            `json:"users_needing_warning"`
	UsersWithWarningsSent     int64            `json:"users_with_warnings_sent"`
	UsersScheduledForDeletion int64            `json:"users_scheduled_for_deletion"`
	TotalDeletedUsers         int64            `json:"total_deleted_users"`
	RecentActions             map[string]int64 `json:"recent_actions"`
}

// ManualCheckResponse is returned by the operator-triggered combined run.
type ManualCheckResponse struct {
	Warnings   BatchOutcome                `json:"warnings"`
	Deletions  BatchOutcome                `json:"deletions"`
	Statistics RetentionStatisticsResponse `json:"statistics"`
}

type ExtendRetentionRequest struct {
	ExtensionDays int    `json:"extension_days" validate:"required,gt=0"`
	Reason        string `json:"reason" validate:"required,min=3,max=255"`
}

type ExtendRetentionResponse struct {
	UserId          uuid.UUID `json:"user_id"`
	NewDeletionDate time.Time `json:"new_deletion_date"`
	ExtensionDays   int       `json:"extension_days"`
}

type RetentionLogResponse struct {
	Id          uuid.UUID              `json:"id"`
	UserId      *uuid.UUID             `json:"user_id,omitempty"`
	Action      string                 `json:"action"`
	Reason      string                 `json:"reason"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	PerformedBy string                 `json:"performed_by"`
	CreatedAt   time.Time              `json:"created_at"`
}

type RetentionLogListResponse struct {
	Logs   []RetentionLogResponse `json:"logs"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

type SchedulerToggleRequest struct {
	Action string `json:"action" validate:"required,oneof=start stop"`
}

type SchedulerStatusResponse struct {
	Running bool       `json:"running"`
	NextRun *time.Time `json:"next_run,omitempty"`
}

// UserRetentionStatusResponse is the member-facing view of their own
// lifecycle position.
type UserRetentionStatusResponse struct {
	UserId            uuid.UUID              `json:"user_id"`
	Status            string                 `json:"status"` // active | warning_due | warning_sent | scheduled_for_deletion
	LastActiveAt      time.Time              `json:"last_active_at"`
	DaysSinceActive   int                    `json:"days_since_active"`
	WarningSentAt     *time.Time             `json:"warning_sent_at,omitempty"`
	ScheduledDeletion *time.Time             `json:"scheduled_deletion_at,omitempty"`
	DaysUntilDeletion *int                   `json:"days_until_deletion,omitempty"`
	RecentActivity    []RetentionLogResponse `json:"recent_activity"`
}
