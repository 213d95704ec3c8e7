package commands

import (
	"context"
	"fmt"
	"log/slog"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/money"
	"belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type IssueIntentParams struct {
	BookingID     uuid.UUID
	Reference     string
	Description   string
	Amount        money.Money
	Currency      string
	CustomerEmail string
}

type PaymentCommands interface {
	// IssueIntent never changes booking or payment status.
	IssueIntent(ctx context.Context, params IssueIntentParams) (*payment.Intent, error)
	IssueIntentForBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error)
}

type paymentUseCaseImpl struct {
	uow      shared.UnitOfWork
	provider payment.Provider
}

func NewPaymentUseCase(uow shared.UnitOfWork, provider payment.Provider) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, provider: provider}
}

func (uc *paymentUseCaseImpl) IssueIntent(ctx context.Context, params IssueIntentParams) (*payment.Intent, error) {
	if params.BookingID == uuid.Nil {
		return nil, errs.Mark(errs.New("booking id is required"), ErrPaymentProvider)
	}

	amountMinor, err := payment.ToMinorUnits(params.Amount, params.Currency)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentProvider)
	}

	session, err := uc.provider.CreateSession(ctx, payment.SessionRequest{
		BookingID:      params.BookingID,
		Reference:      params.Reference,
		Description:    params.Description,
		AmountMinor:    amountMinor,
		Currency:       params.Currency,
		CustomerEmail:  params.CustomerEmail,
		IdempotencyKey: "intent-" + params.BookingID.String(),
	})
	if err != nil {
		slog.Error("Payment provider rejected session",
			"booking_id", params.BookingID.String(),
			"amount_minor", amountMinor,
			"currency", params.Currency,
			"error", err.Error())
		return nil, errs.Mark(err, ErrPaymentProvider)
	}

	uc.recordSession(ctx, params.BookingID, session.ID)

	return &payment.Intent{
		BookingID:                params.BookingID,
		SessionID:                session.ID,
		ClientSecretOrSessionURL: session.Handle(),
		Amount:                   params.Amount,
		AmountMinor:              amountMinor,
		Currency:                 params.Currency,
	}, nil
}

func (uc *paymentUseCaseImpl) IssueIntentForBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Intent, error) {
	b, err := uc.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrBookingNotFound)
		}
		return nil, errs.Mark(err, ErrPersistence)
	}
	if !b.IsPayable() {
		return nil, ErrBookingNotPayable
	}

	return uc.IssueIntent(ctx, IssueIntentParamsFor(b))
}

func IssueIntentParamsFor(b *booking.Booking) IssueIntentParams {
	return IssueIntentParams{
		BookingID: b.ID(),
		Reference: b.Reference(),
		Description: fmt.Sprintf("%s: %s for %d on %s",
			b.Reference(), b.AdventureID(), b.NumberOfTravelers(), b.BookingDate().String()),
		Amount:        b.TotalAmount(),
		Currency:      b.Currency(),
		CustomerEmail: b.Email().String(),
	}
}

// recordSession is best effort: confirmation resolves bookings by the
// client reference, so a missing session id only loses the lookup shortcut.
func (uc *paymentUseCaseImpl) recordSession(ctx context.Context, bookingID uuid.UUID, sessionID string) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bookings().AttachPaymentSession(ctx, tx.DB(), bookingID, sessionID)
	})
	if err == nil {
		return
	}
	if infra.IsKind(err, infra.KindNotFound) {
		slog.Warn("Payment session issued for a booking that is no longer pending",
			"booking_id", bookingID.String(),
			"session_id", sessionID)
		return
	}
	slog.Error("Failed to record payment session",
		"booking_id", bookingID.String(),
		"session_id", sessionID,
		"error", err.Error())
}
