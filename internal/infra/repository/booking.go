package repository

import (
	"context"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/infra/repository/converter"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) (sqlc.Bookings, error)
	MarkBookingConfirmed(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	MarkBookingPaymentFailed(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	AttachBookingPaymentSession(ctx context.Context, db sqlc.DBTX, arg sqlc.AttachBookingPaymentSessionParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) (*booking.Booking, error) {
	params, err := converter.BookingToInfra(b)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindCheckViolated)
	}

	row, err := r.queries.CreateBooking(ctx, tx, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return converter.BookingFromInfra(row), nil
}

func (r *BookingRepository) MarkConfirmed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.MarkBookingConfirmed(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no pending booking to confirm", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to confirm booking", err)
	}

	return converter.BookingFromInfra(row), nil
}

func (r *BookingRepository) MarkPaymentFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.MarkBookingPaymentFailed(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no pending booking to mark failed", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to mark booking payment failed", err)
	}

	return converter.BookingFromInfra(row), nil
}

func (r *BookingRepository) AttachPaymentSession(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, sessionID string) error {
	params := sqlc.AttachBookingPaymentSessionParams{
		ID:               id,
		PaymentSessionID: pgconv.StringToPgtype(sessionID),
	}

	affected, err := r.queries.AttachBookingPaymentSession(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to attach payment session", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("no pending booking to attach payment session", nil, infra.KindNotFound)
	}

	return nil
}
