package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher_Publish(t *testing.T) {
	ctx := context.Background()
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventOrderPlaced, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	dispatcher.Publish(ctx, Event{
		Type:     EventOrderPlaced,
		Actor:    Actor{Class: "CUSTOMER", ID: "c1"},
		EntityID: "order-1",
	})
	dispatcher.Publish(ctx, Event{Type: EventProductCreated})

	require.Len(t, received, 1, "only subscribed types are delivered")
	assert.Equal(t, "order-1", received[0].EntityID)
	assert.NotEmpty(t, received[0].ID, "publish assigns an event id")
	assert.False(t, received[0].Timestamp.IsZero(), "publish stamps the event")
}

func TestInMemoryDispatcher_HandlerErrorsDoNotPropagate(t *testing.T) {
	ctx := context.Background()
	dispatcher := NewInMemoryDispatcher()

	calls := 0
	dispatcher.Subscribe(EventOrderPlaced, func(context.Context, Event) error {
		calls++
		return errors.New("subscriber failure")
	})
	dispatcher.Subscribe(EventOrderPlaced, func(context.Context, Event) error {
		calls++
		return nil
	})

	dispatcher.Publish(ctx, Event{Type: EventOrderPlaced})
	assert.Equal(t, 2, calls, "a failing handler must not stop the rest")
}

func TestAll_CoversEveryEventType(t *testing.T) {
	seen := map[EventType]bool{}
	for _, eventType := range All() {
		assert.False(t, seen[eventType], "duplicate event type %s", eventType)
		seen[eventType] = true
	}
	assert.Len(t, seen, 15)
}
