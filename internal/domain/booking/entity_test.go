//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/money"
	"belizevibes-booking/internal/pkg/clock"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("tour-42 at 100.00 for two travelers", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, strings.HasPrefix(actual.Reference(), booking.ReferencePrefix))
		assert.Equal(t, "tour-42", actual.AdventureID())
		assert.Equal(t, int64(10000), actual.PricePerPerson().Cents())
		assert.Equal(t, int64(20000), actual.TotalAmount().Cents())
		assert.Equal(t, "200.00", actual.TotalAmount().String())
		assert.Equal(t, "USD", actual.Currency())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, booking.PaymentPending, actual.PaymentStatus())
		assert.Empty(t, actual.PaymentSessionID())
	})

	t.Run("travelers validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "zero travelers", mutate: func(b *builder.BookingBuilder) { b.WithTravelers(0) }, errIs: booking.ErrInvalidTravelers},
			{name: "negative travelers", mutate: func(b *builder.BookingBuilder) { b.WithTravelers(-3) }, errIs: booking.ErrInvalidTravelers},
			{name: "single traveler", mutate: func(b *builder.BookingBuilder) { b.WithTravelers(1) }},
			{name: "large party", mutate: func(b *builder.BookingBuilder) { b.WithTravelers(40) }},
		})
	})

	t.Run("email validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "empty email", mutate: func(b *builder.BookingBuilder) { b.WithEmail("") }, errIs: booking.ErrInvalidEmail},
			{name: "whitespace email", mutate: func(b *builder.BookingBuilder) { b.WithEmail("   ") }, errIs: booking.ErrInvalidEmail},
			{name: "missing domain", mutate: func(b *builder.BookingBuilder) { b.WithEmail("maya@") }, errIs: booking.ErrInvalidEmail},
			{name: "no at sign", mutate: func(b *builder.BookingBuilder) { b.WithEmail("maya.example.com") }, errIs: booking.ErrInvalidEmail},
			{name: "surrounding spaces are trimmed", mutate: func(b *builder.BookingBuilder) { b.WithEmail("  maya@example.com ") }},
		})
	})

	t.Run("date validation", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "not a date", mutate: func(b *builder.BookingBuilder) { b.WithBookingDate("next tuesday") }, errIs: booking.ErrInvalidDate},
			{name: "impossible day", mutate: func(b *builder.BookingBuilder) { b.WithBookingDate("2026-02-30") }, errIs: booking.ErrInvalidDate},
			{name: "time of day is rejected", mutate: func(b *builder.BookingBuilder) { b.WithBookingDate("2026-12-01T10:00:00Z") }, errIs: booking.ErrInvalidDate},
			{name: "yesterday", mutate: func(b *builder.BookingBuilder) { b.WithBookingDate("2026-10-15") }, errIs: booking.ErrDateInPast},
			{name: "today", mutate: func(b *builder.BookingBuilder) { b.WithBookingDate("2026-10-16") }},
		})
	})

	t.Run("free text bounds", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "special requests at limit",
				mutate: func(b *builder.BookingBuilder) { b.WithSpecialRequests(strings.Repeat("a", booking.MaxSpecialRequestsLength)) },
			},
			{
				name:   "special requests over limit",
				mutate: func(b *builder.BookingBuilder) { b.WithSpecialRequests(strings.Repeat("a", booking.MaxSpecialRequestsLength+1)) },
				errIs:  booking.ErrSpecialRequestsTooLong,
			},
			{
				name:   "traveler name over limit",
				mutate: func(b *builder.BookingBuilder) { b.WithTravelerName(strings.Repeat("n", booking.MaxTravelerNameLength+1)) },
				errIs:  booking.ErrTravelerNameTooLong,
			},
		})
	})

	t.Run("quote must match the adventure", func(t *testing.T) {
		runCases(t, []testCase{
			{name: "different adventure", mutate: func(b *builder.BookingBuilder) { b.WithAdventureID("atm-cave") }, errIs: booking.ErrQuoteMismatch},
			{name: "zero price", mutate: func(b *builder.BookingBuilder) { b.WithPrice("$0") }, errIs: booking.ErrInvalidPrice},
		})
	})

	t.Run("all validation errors are marked", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithTravelers(0).BuildDomain()
		assert.True(t, errs.Is(err, booking.ErrValidation))
	})

	t.Run("text is trimmed", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithTravelerName("  Maya Chen ").
			WithSpecialRequests("\n vegetarian lunch \n").
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, "Maya Chen", actual.TravelerName())
		assert.Equal(t, "vegetarian lunch", actual.SpecialRequests())
	})

	t.Run("date in business time zone", func(t *testing.T) {
		belize := time.FixedZone("America/Belize", -6*60*60)
		// 2026-10-17 03:00 UTC is still the 16th in Belize.
		clk := clock.NewMockClock(time.Date(2026, 10, 17, 3, 0, 0, 0, time.UTC).In(belize))
		services := &booking.Services{Clock: clk}

		quote := adventure.PriceQuote{AdventureID: "tour-42", PricePerPerson: money.FromCents(10000), Source: adventure.SourceCatalog}
		in := builder.NewBookingBuilder().WithBookingDate("2026-10-16").BuildInput()

		_, err := booking.NewBooking(services, in, quote)
		assert.NoError(t, err)
	})
}

func TestBooking_Confirm(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	t.Run("pending becomes confirmed and paid", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Confirm(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
		assert.True(t, b.IsConfirmed())
	})

	t.Run("second confirm reports already confirmed and keeps state", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Confirm(now))

		err = b.Confirm(now.Add(time.Minute))
		assert.ErrorIs(t, err, booking.ErrAlreadyConfirmed)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, booking.PaymentPaid, b.PaymentStatus())
	})

	t.Run("cancelled cannot be confirmed", func(t *testing.T) {
		b := booking.Reconstruct(builder.NewBookingBuilder().WithStatus(booking.StatusCancelled, booking.PaymentPending).BuildSnapshot())

		assert.ErrorIs(t, b.Confirm(now), booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("failed payment can still be confirmed by a later success", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.MarkPaymentFailed(now))

		require.NoError(t, b.Confirm(now))
		assert.True(t, b.IsConfirmed())
	})
}

func TestBooking_PaymentTransitions(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	t.Run("attach session keeps statuses", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.AttachPaymentSession("cs_test_123", now))
		assert.Equal(t, "cs_test_123", b.PaymentSessionID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, booking.PaymentPending, b.PaymentStatus())
	})

	t.Run("confirmed booking cannot fail", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Confirm(now))

		assert.ErrorIs(t, b.MarkPaymentFailed(now), booking.ErrInvalidTransition)
		assert.True(t, b.IsConfirmed())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.True(t, errs.Is(err, c.errIs), "expected [%v] but got [%v]", c.errIs, err)
			}
		})
	}
}
