package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/pricing"
	"belizevibes-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	EndpointCreateBooking = "POST /api/bookings"
	EndpointCheckout      = "POST /api/checkout"

	idempotencyTTL = 24 * time.Hour
)

type CreateBookingParams struct {
	Input booking.Input
	// IdempotencyKey is optional; without it every call creates a booking.
	IdempotencyKey *uuid.UUID
	Endpoint       string
}

type CreateBookingResult struct {
	Booking    *booking.Booking
	IsReplayed bool
}

type BookingCommands interface {
	Create(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
}

type bookingUseCaseImpl struct {
	uow      shared.UnitOfWork
	resolver pricing.Resolver
	services *booking.Services
	clock    clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, resolver pricing.Resolver, clk clock.Clock, currency string) BookingCommands {
	return &bookingUseCaseImpl{
		uow:      uow,
		resolver: resolver,
		services: &booking.Services{
			Clock:      clk,
			Currency:   currency,
			References: booking.ShortReferences{},
		},
		clock: clk,
	}
}

// Create resolves the price, builds the booking and stores it together with
// its booking_created notification in one transaction. A completed
// idempotency key replays its booking before any pricing or validation, so a
// retry still succeeds after the date passes or the catalog changes.
func (uc *bookingUseCaseImpl) Create(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	endpoint := params.Endpoint
	if endpoint == "" {
		endpoint = EndpointCreateBooking
	}

	var requestHash string
	if params.IdempotencyKey != nil {
		requestHash = requestHashOf(endpoint, params.Input)
		replayed, err := uc.lookupReplay(ctx, *params.IdempotencyKey, requestHash)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			slog.Info("Booking replayed", "booking_id", replayed.ID().String(), "idempotency_key", params.IdempotencyKey.String())
			return &CreateBookingResult{Booking: replayed, IsReplayed: true}, nil
		}
	}

	quote, err := uc.resolver.Resolve(ctx, params.Input.AdventureID)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(uc.services, params.Input, quote)
	if err != nil {
		return nil, err
	}

	var result *CreateBookingResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = nil
		if params.IdempotencyKey != nil {
			replayed, ierr := uc.claimIdempotencyKey(ctx, tx, *params.IdempotencyKey, params.Input.UserID, endpoint, requestHash)
			if ierr != nil {
				return ierr
			}
			if replayed != nil {
				result = &CreateBookingResult{Booking: replayed, IsReplayed: true}
				return nil
			}
		}

		stored, cerr := tx.Bookings().Create(ctx, tx.DB(), b)
		if cerr != nil {
			return errs.Mark(cerr, ErrPersistence)
		}

		if nerr := enqueueBookingEvent(ctx, tx, shared.TopicBookingCreated, stored, uc.clock.Now()); nerr != nil {
			return errs.Mark(nerr, ErrPersistence)
		}

		if params.IdempotencyKey != nil {
			uerr := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *params.IdempotencyKey, hashOf(stored.ID().String()), stored.ID())
			if uerr != nil {
				return errs.Mark(uerr, ErrPersistence)
			}
		}

		result = &CreateBookingResult{Booking: stored}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.IsReplayed {
		slog.Info("Booking created",
			"booking_id", result.Booking.ID().String(),
			"reference", result.Booking.Reference(),
			"adventure_id", result.Booking.AdventureID(),
			"price_source", string(quote.Source),
			"total", result.Booking.TotalAmount().String())
	}
	return result, nil
}

// lookupReplay checks the key outside any transaction. It returns nil when
// the key is unknown or expired and this call should go on to claim it.
func (uc *bookingUseCaseImpl) lookupReplay(ctx context.Context, key uuid.UUID, requestHash string) (*booking.Booking, error) {
	reads := uc.uow.CommandReads()
	existing, err := reads.IdempotencyByKey(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrPersistence)
	}
	if existing.ExpiresAt.Before(uc.clock.Now()) {
		return nil, nil
	}
	return replayOf(ctx, reads, existing, requestHash)
}

// claimIdempotencyKey returns the stored booking when the key was already
// completed for the same request, and nil when this call owns the key.
func (uc *bookingUseCaseImpl) claimIdempotencyKey(ctx context.Context, tx shared.Tx, key uuid.UUID, userID *uuid.UUID, endpoint, requestHash string) (*booking.Booking, error) {
	expiresAt := uc.clock.Now().Add(idempotencyTTL)

	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return nil, errs.Mark(err, ErrPersistence)
	}
	if inserted {
		return nil, nil
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrPersistence)
	}

	if existing.ExpiresAt.Before(uc.clock.Now()) {
		claimed, cerr := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, userID, endpoint, requestHash, expiresAt)
		if cerr != nil {
			return nil, errs.Mark(cerr, ErrPersistence)
		}
		if !claimed {
			return nil, ErrIdempotencyInProgress
		}
		return nil, nil
	}

	return replayOf(ctx, tx.Reads(), existing, requestHash)
}

// replayOf resolves a live key to its booking, or to the error the caller gets.
func replayOf(ctx context.Context, reads shared.CommandReads, existing *shared.IdempotencyRecord, requestHash string) (*booking.Booking, error) {
	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.Mark(errs.New("completed idempotency key has no booking"), ErrPersistence)
		}
		stored, err := reads.BookingByID(ctx, *existing.ResultBookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, errs.Mark(err, ErrBookingNotFound)
			}
			return nil, errs.Mark(err, ErrPersistence)
		}
		return stored, nil
	case shared.IdempotencyStatusProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

// requestHashOf binds a key to the endpoint, the caller and the payload.
func requestHashOf(endpoint string, in booking.Input) string {
	data, _ := json.Marshal(struct {
		Endpoint string        `json:"endpoint"`
		Input    booking.Input `json:"input"`
	}{endpoint, in})
	return hashOf(string(data))
}

func hashOf(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
