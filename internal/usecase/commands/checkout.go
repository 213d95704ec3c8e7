package commands

import (
	"context"
	"log/slog"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/pkg/errs"
)

type CheckoutResult struct {
	Booking    *booking.Booking
	Intent     *payment.Intent
	IsReplayed bool
}

type CheckoutCommands interface {
	// Checkout returns the result with its booking even when intent issuance
	// fails; the booking then stays pending/pending.
	Checkout(ctx context.Context, params CreateBookingParams) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	bookings BookingCommands
	payments PaymentCommands
}

func NewCheckoutUseCase(bookings BookingCommands, payments PaymentCommands) CheckoutCommands {
	return &checkoutUseCaseImpl{bookings: bookings, payments: payments}
}

func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, params CreateBookingParams) (*CheckoutResult, error) {
	if params.Endpoint == "" {
		params.Endpoint = EndpointCheckout
	}

	created, err := uc.bookings.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{Booking: created.Booking, IsReplayed: created.IsReplayed}
	if !created.Booking.IsPayable() {
		return result, ErrBookingNotPayable
	}

	intent, err := uc.payments.IssueIntent(ctx, IssueIntentParamsFor(created.Booking))
	if err != nil {
		slog.Warn("Booking stored but payment could not be initialized",
			"booking_id", created.Booking.ID().String(),
			"error", err.Error())
		if !errs.Is(err, ErrPaymentProvider) {
			err = errs.Mark(err, ErrPaymentProvider)
		}
		return result, err
	}

	result.Intent = intent
	return result, nil
}
