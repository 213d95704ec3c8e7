package readstore

import (
	"context"
	"time"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/infra"
	"belizevibes-booking/internal/infra/repository/converter"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/pkg/pgconv"
	"belizevibes-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetBookingByPaymentSessionID(ctx context.Context, db sqlc.DBTX, paymentSessionID pgtype.Text) (sqlc.Bookings, error)
	ListBookingsByUserID(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserIDParams) ([]sqlc.Bookings, error)
	ListBookingsByUserIDKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserIDKeysetParams) ([]sqlc.Bookings, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	b, err := r.LoadByID(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return queries.ViewFromSnapshot(b.Snapshot()), nil
}

func (r *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	params := sqlc.ListBookingsByUserIDParams{
		UserID: pgconv.UUIDToPgtype(userID),
		Limit:  limit,
	}

	rows, err := r.queries.ListBookingsByUserID(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page by user", err)
	}
	return mapBookingListRows(rows), nil
}

func (r *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	params := sqlc.ListBookingsByUserIDKeysetParams{
		UserID:        pgconv.UUIDToPgtype(userID),
		LastCreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		LastID:        lastID,
		MaxRows:       limit,
	}

	rows, err := r.queries.ListBookingsByUserIDKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset by user", err)
	}
	return mapBookingListRows(rows), nil
}

// LoadByID reads through db so commands can see their own uncommitted writes.
func (r *BookingReadStore) LoadByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}
	return converter.BookingFromInfra(row), nil
}

func (r *BookingReadStore) LoadByPaymentSession(ctx context.Context, db sqlc.DBTX, sessionID string) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByPaymentSessionID(ctx, db, pgconv.StringToPgtype(sessionID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found for payment session", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking by payment session", err)
	}
	return converter.BookingFromInfra(row), nil
}

func mapBookingListRows(rows []sqlc.Bookings) []*queries.BookingListItem {
	items := make([]*queries.BookingListItem, len(rows))
	for i, row := range rows {
		items[i] = queries.ListItemFromView(queries.ViewFromSnapshot(converter.SnapshotFromInfra(row)))
	}
	return items
}
