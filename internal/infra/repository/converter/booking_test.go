//go:build unit

package converter_test

import (
	"testing"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/infra/repository/converter"
	"belizevibes-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingToInfra(t *testing.T) {
	userID := uuid.New()
	b, err := builder.NewBookingBuilder().
		WithUserID(userID).
		WithSpecialRequests("vegetarian lunch").
		BuildDomain()
	require.NoError(t, err)

	params, err := converter.BookingToInfra(b)
	require.NoError(t, err)

	assert.Equal(t, b.ID(), params.ID)
	assert.Equal(t, "tour-42", params.AdventureID)
	assert.True(t, params.UserID.Valid)
	assert.Equal(t, [16]byte(userID), params.UserID.Bytes)
	assert.Equal(t, "2026-11-20", params.BookingDate.Time.Format("2006-01-02"))
	assert.Equal(t, int32(2), params.NumberOfTravelers)
	assert.Equal(t, "vegetarian lunch", params.SpecialRequests.String)
	assert.Equal(t, int64(10000), params.PricePerPersonCents)
	assert.Equal(t, int64(20000), params.TotalAmountCents)
	assert.Equal(t, "pending", params.Status)
	assert.Equal(t, "pending", params.PaymentStatus)
}

func TestBookingToInfra_GuestWithoutRequests(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	params, err := converter.BookingToInfra(b)
	require.NoError(t, err)

	assert.False(t, params.UserID.Valid)
	assert.False(t, params.SpecialRequests.Valid)
}

func TestSnapshotFromInfra(t *testing.T) {
	testCases := []struct {
		name string
		b    *builder.BookingBuilder
	}{
		{name: "pending guest booking", b: builder.NewBookingBuilder()},
		{
			name: "confirmed booking with session",
			b: builder.NewBookingBuilder().
				WithUserID(uuid.New()).
				WithStatus(booking.StatusConfirmed, booking.PaymentPaid).
				WithPaymentSessionID("cs_test_0001").
				WithSpecialRequests("early pickup"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := converter.SnapshotFromInfra(tc.b.BuildInfra())
			assert.Equal(t, tc.b.BuildSnapshot(), got)
		})
	}
}

func TestBookingFromInfra(t *testing.T) {
	row := builder.NewBookingBuilder().
		WithStatus(booking.StatusConfirmed, booking.PaymentPaid).
		BuildInfra()

	b := converter.BookingFromInfra(row)

	assert.Equal(t, row.ID, b.ID())
	assert.True(t, b.IsConfirmed())
	assert.False(t, b.IsPayable())
	assert.Equal(t, "200.00", b.TotalAmount().String())
}
