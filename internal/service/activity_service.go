package service

import (
	"context"
	"encoding/json"
	"time"

	"hiking-portal-be/internal/pkg/clock"
	"hiking-portal-be/internal/pkg/logger"
	"hiking-portal-be/internal/repository/memory"
	"hiking-portal-be/internal/repository/unitofwork"
	"hiking-portal-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// ActivityTopic carries USER_ACTIVITY events from the HTTP layer to the
// background recorder.
const ActivityTopic = "USER_ACTIVITY"

// IActivityService records "member was seen" signals. Record is best-effort
// and fire-and-forget: it never returns an error and never delays the request
// that triggered it. A one-sweep-cycle delay in reflecting fresh activity is
// an accepted tolerance.
type IActivityService interface {
	Record(ctx context.Context, userId uuid.UUID)
	Consume(ctx context.Context) error
}

// activityEventPayload is the decode shape for the wire form of
// events.NewUserActivityEvent.
type activityEventPayload struct {
	UserId string `json:"user_id"`
	SeenAt string `json:"seen_at"`
}

type activityService struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	throttle   *memory.ActivityThrottle
	clk        clock.Clock
	logger     logger.ILogger
}

func NewActivityService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	throttle *memory.ActivityThrottle,
	clk clock.Clock,
	log logger.ILogger,
) IActivityService {
	return &activityService{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		throttle:   throttle,
		clk:        clk,
		logger:     log,
	}
}

func (s *activityService) Record(ctx context.Context, userId uuid.UUID) {
	// One write per user per throttle window is plenty for a three-year
	// inactivity threshold.
	if !s.throttle.ShouldRecord(userId) {
		return
	}

	evt := events.NewUserActivityEvent(userId, s.clk.Now())
	payload, err := json.Marshal(evt.Payload())
	if err != nil {
		s.throttle.Forget(userId)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", evt.EventType())
	if err := s.pubSub.Publish(ActivityTopic, msg); err != nil {
		// Errors are logged, never propagated to the request path.
		s.logger.Warn("ActivityService", "Failed to publish activity event", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		s.throttle.Forget(userId)
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, ActivityTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(ctx context.Context, msg *message.Message) {
	// Always Ack: activity recording is best-effort and the next request
	// from the same member produces a fresh event anyway.
	defer msg.Ack()

	var payload activityEventPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Warn("ActivityService", "Failed to unmarshal activity event", map[string]interface{}{"error": err.Error()})
		return
	}

	userId, err := uuid.Parse(payload.UserId)
	if err != nil {
		s.logger.Warn("ActivityService", "Invalid user id in activity event", map[string]interface{}{"user_id": payload.UserId})
		return
	}

	seenAt, err := time.Parse(time.RFC3339, payload.SeenAt)
	if err != nil {
		seenAt = s.clk.Now()
	}

	// Fresh activity does NOT clear an existing warning or deletion deadline.
	// Only an explicit admin extension moves the deadline; flagged with the
	// product owner as possibly unintended, kept here to match the approved
	// compliance behaviour.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateLastActive(ctx, userId, seenAt); err != nil {
		s.logger.Warn("ActivityService", "Failed to record activity", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		s.throttle.Forget(userId)
	}
}
