package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hiking-portal-be/internal/entity"
	"hiking-portal-be/internal/pkg/clock"
	"hiking-portal-be/internal/repository/memory"
	"hiking-portal-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivityFixture(t *testing.T, users ...*entity.User) (IActivityService, *fakeUserRepo, *memory.ActivityThrottle, *clock.Fake) {
	t.Helper()

	userRepo := newFakeUserRepo(users...)
	uow := &fakeUow{
		users:    userRepo,
		payments: &fakePaymentRepo{},
		content:  &fakeContentRepo{},
		logs:     &fakeLogRepo{},
		notifs:   &fakeNotifLogRepo{},
	}
	throttle := memory.NewActivityThrottle(time.Hour)
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	svc := NewActivityService(pubSub, &fakeFactory{uow: uow}, throttle, clk, nopLogger{})
	require.NoError(t, svc.Consume(context.Background()))

	return svc, userRepo, throttle, clk
}

func TestActivityRecordUpdatesLastActive(t *testing.T) {
	u := &entity.User{Id: uuid.New(), Email: "member@example.com", Status: entity.UserStatusApproved}
	svc, users, _, clk := newActivityFixture(t, u)

	svc.Record(context.Background(), u.Id)

	assert.Eventually(t, func() bool {
		stored := users.users[u.Id]
		return stored.LastActiveAt != nil && stored.LastActiveAt.Equal(clk.Now())
	}, 2*time.Second, 10*time.Millisecond)
}

func TestActivityRecordPublishesEventPayload(t *testing.T) {
	u := &entity.User{Id: uuid.New(), Email: "member@example.com", Status: entity.UserStatusApproved}
	userRepo := newFakeUserRepo(u)
	uow := &fakeUow{
		users:    userRepo,
		payments: &fakePaymentRepo{},
		content:  &fakeContentRepo{},
		logs:     &fakeLogRepo{},
		notifs:   &fakeNotifLogRepo{},
	}
	clk := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewActivityService(pubSub, &fakeFactory{uow: uow}, memory.NewActivityThrottle(time.Hour), clk, nopLogger{})

	messages, err := pubSub.Subscribe(context.Background(), ActivityTopic)
	require.NoError(t, err)

	svc.Record(context.Background(), u.Id)

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, events.EventTypeUserActivity, msg.Metadata.Get("event_type"))

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		want := events.NewUserActivityEvent(u.Id, clk.Now()).Payload()
		assert.Equal(t, want["user_id"], got["user_id"])
		assert.Equal(t, want["seen_at"], got["seen_at"])
	case <-time.After(2 * time.Second):
		t.Fatal("no activity event published")
	}
}

func TestActivityRecordThrottlesRepeatedSignals(t *testing.T) {
	u := &entity.User{Id: uuid.New(), Email: "member@example.com", Status: entity.UserStatusApproved}
	svc, _, throttle, _ := newActivityFixture(t, u)

	svc.Record(context.Background(), u.Id)

	// The window is consumed by the first call; later calls in the same
	// window are dropped before publishing.
	assert.False(t, throttle.ShouldRecord(u.Id))
	svc.Record(context.Background(), u.Id)
	assert.False(t, throttle.ShouldRecord(u.Id))
}

func TestActivityRecordIgnoresTerminalAccounts(t *testing.T) {
	u := &entity.User{Id: uuid.New(), Email: "gone@anonymized.local", Status: entity.UserStatusDeleted}
	svc, users, _, _ := newActivityFixture(t, u)

	svc.Record(context.Background(), u.Id)

	// Activity on a deleted account is dropped by the repository guard; give
	// the consumer a moment, then confirm nothing moved.
	time.Sleep(100 * time.Millisecond)
	assert.Nil(t, users.users[u.Id].LastActiveAt)
}

func TestActivityRecordUnknownUserIsBestEffort(t *testing.T) {
	svc, _, _, _ := newActivityFixture(t)

	// Must not panic or block the caller.
	svc.Record(context.Background(), uuid.New())
	time.Sleep(50 * time.Millisecond)
}
