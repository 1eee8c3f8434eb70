package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_ACTIVITY").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used across the portal.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// EventTypeUserActivity marks a "member was seen" event emitted by the HTTP
// layer and consumed by the retention activity recorder.
const EventTypeUserActivity = "USER_ACTIVITY"

func NewUserActivityEvent(userId uuid.UUID, seenAt time.Time) BaseEvent {
	return BaseEvent{
		Type: EventTypeUserActivity,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"seen_at": seenAt.Format(time.RFC3339),
		},
		OccurredAt: seenAt,
	}
}
