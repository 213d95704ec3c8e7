package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"belizevibes-booking/internal/usecase/shared"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// BookingTopics are the topics the outbox relay publishes booking events to.
var BookingTopics = []string{
	shared.TopicBookingCreated,
	shared.TopicBookingConfirmed,
	shared.TopicBookingPaymentFailed,
}

// NotificationHandler consumes booking events inside the process and records
// the traveler notification each one stands for.
type NotificationHandler struct {
	logger *slog.Logger
}

func NewNotificationHandler(logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger}
}

func (h *NotificationHandler) Handle(msg *message.Message) error {
	var ev shared.BookingEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		// Acked: redelivery cannot fix the payload.
		h.logger.Error("Dropping undecodable booking event",
			"message_id", msg.UUID,
			"error", err.Error())
		return nil
	}

	h.logger.Info("Booking notification",
		"topic", message.SubscribeTopicFromCtx(msg.Context()),
		"message_id", msg.UUID,
		"booking_id", ev.BookingID.String(),
		"reference", ev.Reference,
		"email", ev.Email,
		"status", ev.Status,
		"payment_status", ev.PaymentStatus)
	return nil
}

// NewConsumerRouter subscribes handler to every booking topic on the bus.
// It needs a bus with a Subscriber, i.e. the in-memory driver.
func NewConsumerRouter(bus *Bus, handler message.NoPublishHandlerFunc, logger *slog.Logger) (*message.Router, error) {
	wlogger := watermill.NewSlogLogger(logger)

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, wlogger)
	if err != nil {
		return nil, err
	}

	retry := middleware.Retry{
		MaxRetries:      3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          wlogger,
	}
	router.AddMiddleware(middleware.Recoverer, retry.Middleware)

	for _, topic := range BookingTopics {
		router.AddNoPublisherHandler("notify_"+topic, topic, bus.Subscriber, handler)
	}
	return router, nil
}
