// FILE: internal/entity/notification_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeEmail = "email"

	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
	NotificationStatusSkipped = "skipped"
)

// NotificationLog records every outbound notification attempt, successful or
// not, for operator troubleshooting.
type NotificationLog struct {
	Id        uuid.UUID
	UserId    *uuid.UUID
	Type      string
	Recipient string
	Subject   string
	Status    string
	Error     *string
	SentAt    time.Time
}
