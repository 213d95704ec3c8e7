//go:build unit

package response_test

import (
	"testing"
	"time"

	"belizevibes-booking/internal/domain/money"
	"belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/usecase/queries"
	"belizevibes-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBookingView(t *testing.T) {
	view := builder.NewBookingBuilder().BuildView()

	res, err := response.FromBookingView(view)
	require.NoError(t, err)

	assert.Equal(t, view.ID.String(), res.ID)
	assert.Equal(t, "tour-42", res.AdventureID)
	assert.Equal(t, "100.00", res.PricePerPerson)
	assert.Equal(t, "200.00", res.TotalAmount)
	assert.Equal(t, view.CreatedAt.Unix(), res.CreatedAt)
	assert.Equal(t, "pending", res.Status)
}

func TestFromBookingView_MissingSource(t *testing.T) {
	_, err := response.FromBookingView((*queries.BookingView)(nil))
	assert.Error(t, err)
}

func TestFromBookingList(t *testing.T) {
	created := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	item := &queries.BookingListItem{
		ID:               uuid.New(),
		Reference:        "BV-7fKq2mXa9P",
		TotalAmountCents: 20000,
		Currency:         "USD",
		CreatedAt:        created,
	}

	res, err := response.FromBookingList([]*queries.BookingListItem{item}, &queries.Cursor{After: "next"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, item.ID.String(), res.Items[0].ID)
	assert.Equal(t, "200.00", res.Items[0].TotalAmount)
	assert.Equal(t, created.Unix(), res.Items[0].CreatedAt)
	assert.Equal(t, "next", res.NextCursor)

	_, err = response.FromBookingList([]*queries.BookingListItem{item, nil}, nil)
	assert.Error(t, err)
}

func TestFromIntent(t *testing.T) {
	bookingID := uuid.New()

	res, err := response.FromIntent(&payment.Intent{
		BookingID:                bookingID,
		SessionID:                "cs_test_0001",
		ClientSecretOrSessionURL: "https://checkout.example.test/pay/cs_test_0001",
		Amount:                   money.MustParse("200.00"),
		AmountMinor:              20000,
		Currency:                 "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, bookingID.String(), res.BookingID)
	assert.Equal(t, "200.00", res.Amount)
	assert.Equal(t, int64(20000), res.AmountMinor)

	_, err = response.FromIntent(nil)
	assert.Error(t, err)
}
