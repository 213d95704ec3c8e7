//go:build unit

package events_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"belizevibes-booking/internal/infra/events"
	"belizevibes-booking/internal/pkg/config"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type consumed struct {
	topic   string
	payload string
}

func TestConsumerRouter_DeliversEveryBookingTopic(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus, err := events.NewBus(ctx, config.EventsConfig{Driver: config.EventsDriverMemory}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })

	got := make(chan consumed, len(events.BookingTopics))
	handler := func(msg *message.Message) error {
		got <- consumed{topic: message.SubscribeTopicFromCtx(msg.Context()), payload: string(msg.Payload)}
		return nil
	}

	router, err := events.NewConsumerRouter(bus, handler, slog.Default())
	require.NoError(t, err)
	go func() { _ = router.Run(ctx) }()
	t.Cleanup(func() { _ = router.Close() })

	select {
	case <-router.Running():
	case <-ctx.Done():
		t.Fatal("router did not start")
	}

	for _, topic := range events.BookingTopics {
		require.NoError(t, bus.Publisher.Publish(topic, message.NewMessage("job-"+topic, []byte(`{"reference":"BV-7fKq2mXa9P"}`))))
	}

	seen := map[string]bool{}
	for range events.BookingTopics {
		select {
		case c := <-got:
			seen[c.topic] = true
			assert.JSONEq(t, `{"reference":"BV-7fKq2mXa9P"}`, c.payload)
		case <-ctx.Done():
			t.Fatalf("only %d of %d topics consumed", len(seen), len(events.BookingTopics))
		}
	}
	for _, topic := range events.BookingTopics {
		assert.True(t, seen[topic], topic)
	}
}

func TestNotificationHandler_Handle(t *testing.T) {
	h := events.NewNotificationHandler(slog.Default())

	t.Run("booking event", func(t *testing.T) {
		msg := message.NewMessage("job-1", []byte(`{"booking_id":"0b9a3c1e-6f7d-4c2a-9d58-2f7f0c8a1b11","reference":"BV-7fKq2mXa9P","status":"confirmed","payment_status":"paid"}`))
		msg.SetContext(context.Background())
		assert.NoError(t, h.Handle(msg))
	})

	t.Run("undecodable payload is acked", func(t *testing.T) {
		msg := message.NewMessage("job-2", []byte(`not json`))
		assert.NoError(t, h.Handle(msg))
	})
}
