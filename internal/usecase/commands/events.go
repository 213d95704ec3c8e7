package commands

import (
	"context"
	"encoding/json"
	"time"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/usecase/shared"
)

const notificationKindBookingEvent = "booking_event"

func enqueueBookingEvent(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking, at time.Time) error {
	payload, err := json.Marshal(shared.BookingEvent{
		BookingID:     b.ID(),
		Reference:     b.Reference(),
		AdventureID:   b.AdventureID(),
		Email:         b.Email().String(),
		BookingDate:   b.BookingDate().String(),
		TotalCents:    b.TotalAmount().Cents(),
		Currency:      b.Currency(),
		Status:        string(b.Status()),
		PaymentStatus: string(b.PaymentStatus()),
		OccurredAt:    at,
	})
	if err != nil {
		return err
	}

	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindBookingEvent, topic, payload, at)
}
