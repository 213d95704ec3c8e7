package commands

import (
	"context"
	"log/slog"
	"strings"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReconciliationResult struct {
	Booking          *booking.Booking
	AlreadyConfirmed bool
}

type EventAction string

const (
	ActionConfirmed        EventAction = "confirmed"
	ActionAlreadyConfirmed EventAction = "already_confirmed"
	ActionPaymentFailed    EventAction = "payment_failed"
	ActionIgnored          EventAction = "ignored"
)

type EventOutcome struct {
	EventID   string
	Type      payment.EventType
	BookingID uuid.UUID
	Action    EventAction
}

type ReconciliationCommands interface {
	// Confirm trusts its caller to have seen a payment-success signal.
	Confirm(ctx context.Context, rawBookingID string) (*ReconciliationResult, error)
	// ConfirmRedirect confirms from the traveler's return from checkout, only
	// once the provider reports the booking's session as paid.
	ConfirmRedirect(ctx context.Context, rawBookingID, sessionID string) (*ReconciliationResult, error)
	// HandleProviderEvent only fails for a bad signature or a storage failure
	// worth a provider retry.
	HandleProviderEvent(ctx context.Context, payload []byte, signature string) (*EventOutcome, error)
}

type reconciliationUseCaseImpl struct {
	uow      shared.UnitOfWork
	provider payment.Provider
	clock    clock.Clock
}

func NewReconciliationUseCase(uow shared.UnitOfWork, provider payment.Provider, clk clock.Clock) ReconciliationCommands {
	return &reconciliationUseCaseImpl{uow: uow, provider: provider, clock: clk}
}

func (uc *reconciliationUseCaseImpl) Confirm(ctx context.Context, rawBookingID string) (*ReconciliationResult, error) {
	id, err := parseBookingID(rawBookingID)
	if err != nil {
		return nil, err
	}

	var result *ReconciliationResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		confirmed, merr := tx.Bookings().MarkConfirmed(ctx, tx.DB(), id)
		if merr == nil {
			if nerr := enqueueBookingEvent(ctx, tx, shared.TopicBookingConfirmed, confirmed, uc.clock.Now()); nerr != nil {
				return errs.Mark(nerr, ErrReconciliation)
			}
			result = &ReconciliationResult{Booking: confirmed}
			return nil
		}
		if !infra.IsKind(merr, infra.KindNotFound) {
			return errs.Mark(merr, ErrReconciliation)
		}

		// No pending row: either a duplicate signal or an unknown id.
		existing, rerr := tx.Reads().BookingByID(ctx, id)
		if rerr != nil {
			if infra.IsKind(rerr, infra.KindNotFound) {
				return errs.Mark(rerr, ErrNotFoundOrAlreadyConfirmed)
			}
			return errs.Mark(rerr, ErrReconciliation)
		}
		if !existing.IsConfirmed() {
			return errs.Mark(errs.Newf("booking %s is %s/%s", id, existing.Status(), existing.PaymentStatus()), ErrNotFoundOrAlreadyConfirmed)
		}
		result = &ReconciliationResult{Booking: existing, AlreadyConfirmed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyConfirmed {
		slog.Info("Booking already confirmed", "booking_id", id.String())
	} else {
		slog.Info("Booking confirmed", "booking_id", id.String(), "reference", result.Booking.Reference())
	}
	return result, nil
}

func (uc *reconciliationUseCaseImpl) ConfirmRedirect(ctx context.Context, rawBookingID, sessionID string) (*ReconciliationResult, error) {
	id, err := parseBookingID(rawBookingID)
	if err != nil {
		return nil, err
	}

	b, err := uc.uow.CommandReads().BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrNotFoundOrAlreadyConfirmed)
		}
		return nil, errs.Mark(err, ErrReconciliation)
	}
	if b.IsConfirmed() {
		return &ReconciliationResult{Booking: b, AlreadyConfirmed: true}, nil
	}

	if err := uc.verifyPaid(ctx, b, strings.TrimSpace(sessionID)); err != nil {
		return nil, err
	}
	return uc.Confirm(ctx, id.String())
}

func (uc *reconciliationUseCaseImpl) verifyPaid(ctx context.Context, b *booking.Booking, sessionID string) error {
	if sessionID == "" {
		return errs.Mark(errs.New("checkout session id is required"), ErrPaymentUnverified)
	}
	if recorded := b.PaymentSessionID(); recorded != "" && recorded != sessionID {
		return errs.Mark(errs.Newf("session %s was not issued for booking %s", sessionID, b.ID()), ErrPaymentUnverified)
	}

	s, err := uc.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return errs.Mark(errs.Mark(err, ErrPaymentProvider), ErrPaymentUnverified)
	}
	if s.ClientReferenceID != b.ID().String() {
		return errs.Mark(errs.Newf("session %s belongs to %q", sessionID, s.ClientReferenceID), ErrPaymentUnverified)
	}
	if !s.IsPaid() {
		return errs.Mark(errs.Newf("session %s is %s", sessionID, s.PaymentStatus), ErrPaymentUnverified)
	}
	return nil
}

func (uc *reconciliationUseCaseImpl) HandleProviderEvent(ctx context.Context, payload []byte, signature string) (*EventOutcome, error) {
	ev, err := uc.provider.ParseEvent(payload, signature)
	if err != nil {
		return nil, err
	}

	outcome := &EventOutcome{EventID: ev.ID, Type: ev.Type, Action: ActionIgnored}

	switch ev.Type {
	case payment.EventCheckoutCompleted, payment.EventCheckoutAsyncSucceeded:
		if !ev.IsPaid() {
			slog.Info("Checkout completed without payment yet", "event_id", ev.ID, "session_id", ev.SessionID)
			return outcome, nil
		}
		id, ok, err := uc.bookingIDFor(ctx, ev)
		if err != nil || !ok {
			return outcome, err
		}
		outcome.BookingID = id

		res, err := uc.Confirm(ctx, id.String())
		if err != nil {
			if errs.Is(err, ErrNotFoundOrAlreadyConfirmed) {
				slog.Warn("Paid checkout for a booking that cannot be confirmed",
					"event_id", ev.ID,
					"booking_id", id.String(),
					"error", err.Error())
				return outcome, nil
			}
			return nil, err
		}
		outcome.Action = ActionConfirmed
		if res.AlreadyConfirmed {
			outcome.Action = ActionAlreadyConfirmed
		}
		return outcome, nil

	case payment.EventCheckoutExpired, payment.EventCheckoutAsyncPaymentFailed:
		id, ok, err := uc.bookingIDFor(ctx, ev)
		if err != nil || !ok {
			return outcome, err
		}
		outcome.BookingID = id

		failed, err := uc.markPaymentFailed(ctx, id)
		if err != nil {
			return nil, err
		}
		if failed {
			outcome.Action = ActionPaymentFailed
		}
		return outcome, nil

	default:
		slog.Debug("Ignoring provider event", "event_id", ev.ID, "type", string(ev.Type))
		return outcome, nil
	}
}

// bookingIDFor prefers the client reference and falls back to the recorded
// session id. ok is false when the event cannot be tied to a booking.
func (uc *reconciliationUseCaseImpl) bookingIDFor(ctx context.Context, ev *payment.Event) (uuid.UUID, bool, error) {
	if ev.ClientReferenceID != "" {
		id, err := parseBookingID(ev.ClientReferenceID)
		if err != nil {
			slog.Warn("Provider event carries a malformed client reference",
				"event_id", ev.ID,
				"client_reference_id", ev.ClientReferenceID)
			return uuid.Nil, false, nil
		}
		return id, true, nil
	}

	b, err := uc.uow.CommandReads().BookingByPaymentSession(ctx, ev.SessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("Provider event for an unknown session", "event_id", ev.ID, "session_id", ev.SessionID)
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, errs.Mark(err, ErrReconciliation)
	}
	return b.ID(), true, nil
}

func (uc *reconciliationUseCaseImpl) markPaymentFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	failed := false
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		failed = false
		b, merr := tx.Bookings().MarkPaymentFailed(ctx, tx.DB(), id)
		if merr != nil {
			if infra.IsKind(merr, infra.KindNotFound) {
				return nil
			}
			return errs.Mark(merr, ErrReconciliation)
		}
		if nerr := enqueueBookingEvent(ctx, tx, shared.TopicBookingPaymentFailed, b, uc.clock.Now()); nerr != nil {
			return errs.Mark(nerr, ErrReconciliation)
		}
		failed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if !failed {
		slog.Info("Payment failure ignored, booking not pending", "booking_id", id.String())
	}
	return failed, nil
}

func parseBookingID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, errs.Mark(errs.Mark(errs.New("booking id is required"), ErrMalformedBookingID), ErrReconciliation)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, errs.Mark(errs.Mark(errs.Newf("booking id %q", raw), ErrMalformedBookingID), ErrReconciliation)
	}
	return id, nil
}
