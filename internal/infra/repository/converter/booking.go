package converter

import (
	"fmt"
	"math"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/money"
	sqlc "belizevibes-booking/internal/infra/sqlc/generated"
	"belizevibes-booking/internal/pkg/pgconv"
)

func BookingToInfra(b *booking.Booking) (sqlc.CreateBookingParams, error) {
	travelers := b.NumberOfTravelers()
	if travelers > math.MaxInt32 {
		return sqlc.CreateBookingParams{}, fmt.Errorf("number of travelers out of int32 range: %d", travelers)
	}

	return sqlc.CreateBookingParams{
		ID:                  b.ID(),
		Reference:           b.Reference(),
		AdventureID:         b.AdventureID(),
		UserID:              pgconv.UUIDPtrToPgtype(b.UserID()),
		BookingDate:         pgconv.DateToPgtype(b.BookingDate().Time()),
		TravelerName:        b.TravelerName(),
		Email:               b.Email().String(),
		Phone:               b.Phone(),
		NumberOfTravelers:   int32(travelers), // #nosec G115 -- range checked above
		SpecialRequests:     pgconv.OptionalText(b.SpecialRequests()),
		PricePerPersonCents: b.PricePerPerson().Cents(),
		TotalAmountCents:    b.TotalAmount().Cents(),
		Currency:            b.Currency(),
		Status:              string(b.Status()),
		PaymentStatus:       string(b.PaymentStatus()),
	}, nil
}

func BookingFromInfra(row sqlc.Bookings) *booking.Booking {
	return booking.Reconstruct(SnapshotFromInfra(row))
}

func SnapshotFromInfra(row sqlc.Bookings) booking.Snapshot {
	var requests, sessionID string
	if row.SpecialRequests.Valid {
		requests = row.SpecialRequests.String
	}
	if row.PaymentSessionID.Valid {
		sessionID = row.PaymentSessionID.String
	}

	return booking.Snapshot{
		ID:               row.ID,
		Reference:        row.Reference,
		AdventureID:      row.AdventureID,
		UserID:           pgconv.UUIDPtrFromPgtype(row.UserID),
		BookingDate:      booking.DateOf(pgconv.DateFromPgtype(row.BookingDate)),
		TravelerName:     row.TravelerName,
		Email:            row.Email,
		Phone:            row.Phone,
		Travelers:        int(row.NumberOfTravelers),
		SpecialRequests:  requests,
		PricePerPerson:   money.FromCents(row.PricePerPersonCents),
		TotalAmount:      money.FromCents(row.TotalAmountCents),
		Currency:         row.Currency,
		Status:           booking.Status(row.Status),
		PaymentStatus:    booking.PaymentStatus(row.PaymentStatus),
		PaymentSessionID: sessionID,
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
