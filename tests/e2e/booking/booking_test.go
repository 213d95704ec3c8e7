//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"belizevibes-booking/internal/handler/api"
	"belizevibes-booking/internal/handler/dto/request"
	"belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/usecase/shared"
	"belizevibes-booking/tests/common/builder"
	"belizevibes-booking/tests/common/dbtest"
	"belizevibes-booking/tests/common/harness"
	"belizevibes-booking/tests/common/httptest"
	"belizevibes-booking/tests/common/testutil"
	"belizevibes-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL       = "/api/bookings"
	bookingURL        = "/api/bookings/%s"
	paymentIntentURL  = "/api/bookings/%s/payment-intent"
	checkoutURL       = "/api/checkout"
	paymentSuccessURL = "/api/payments/success?booking=%s&session_id=%s"
	webhookURL        = "/api/payments/webhook"
	priceURL          = "/api/adventures/%s/price"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func nextMonth() string {
	return time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
}

func (s *BookingSuite) bookingRequest() request.CreateBookingRequest {
	return builder.NewBookingBuilder().WithBookingDate(nextMonth()).BuildCreateRequestDTO()
}

func (s *BookingSuite) createBooking(t *testing.T, body any, headers map[string]string) response.BookingResponse {
	t.Helper()

	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, body, headers)
	var created response.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	require.NotEmpty(t, created.ID)
	return created
}

func (s *BookingSuite) issueIntent(t *testing.T, bookingID string) response.PaymentIntentResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(paymentIntentURL, bookingID), nil, "")
	var intent response.PaymentIntentResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &intent)
	require.NotEmpty(t, intent.SessionID)
	return intent
}

// =============================================================================
// TestCreateBooking
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: two travelers on tour-42 are priced from the catalog", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, s.bookingRequest(), "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var got response.BookingResponse
		require.NoError(t, testutil.DecodeJSON(w.Body.Bytes(), &got))

		want := response.BookingResponse{
			AdventureID:       "tour-42",
			BookingDate:       nextMonth(),
			TravelerName:      "Maya Chen",
			Email:             "maya@example.com",
			NumberOfTravelers: 2,
			PricePerPerson:    "100.00",
			TotalAmount:       "200.00",
			Currency:          "USD",
			Status:            "pending",
			PaymentStatus:     "pending",
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(response.BookingResponse{},
			"ID", "Reference", "Phone", "SpecialRequests", "UserID", "CreatedAt", "UpdatedAt")); diff != "" {
			t.Errorf("booking mismatch (-want +got):\n%s", diff)
		}
		assert.Regexp(t, `^BV-`, got.Reference)
		assert.Equal(t, fmt.Sprintf(bookingURL, got.ID), w.Header().Get("Location"))

		state := dbtest.LoadBookingState(t, s.DB, uuid.MustParse(got.ID))
		assert.Equal(t, int64(20000), state.TotalCents)
		assert.Equal(t, "pending", state.Status)
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "notification_jobs"))
	})

	s.Run("Normal case: the live price wins over the built-in catalog", func() {
		t := s.T()
		dbtest.SetAdventurePrice(t, s.DB, "tour-42", 11000, true)

		created := s.createBooking(t, s.bookingRequest(), nil)
		assert.Equal(t, "110.00", created.PricePerPerson)
		assert.Equal(t, "220.00", created.TotalAmount)
	})

	s.Run("Normal case: an inactive live row falls back to the built-in catalog", func() {
		t := s.T()
		dbtest.SetAdventurePrice(t, s.DB, "tour-42", 11000, false)

		created := s.createBooking(t, s.bookingRequest(), nil)
		assert.Equal(t, "100.00", created.PricePerPerson)
	})

	s.Run("Normal case: signed-in traveler owns the booking", func() {
		t := s.T()
		userID := uuid.New()
		token := s.JWT.GenerateToken(t, userID, "maya@example.com")

		created := s.createBooking(t, s.bookingRequest(), map[string]string{"Authorization": "Bearer " + token})
		require.NotNil(t, created.UserID)
		assert.Equal(t, userID.String(), *created.UserID)
	})

	s.Run("Error case: unknown adventure is not found", func() {
		t := s.T()
		body := builder.NewBookingBuilder().WithAdventureID("does-not-exist").WithBookingDate(nextMonth()).BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Adventure not found")
		assert.Zero(t, dbtest.CountRows(t, s.DB, "bookings"))
	})

	s.Run("Error case: zero travelers fails validation", func() {
		t := s.T()
		body := builder.NewBookingBuilder().WithTravelers(0).WithBookingDate(nextMonth()).BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Validation failed")
		assert.Zero(t, dbtest.CountRows(t, s.DB, "bookings"))
	})

	s.Run("Error case: missing email is a bad request", func() {
		t := s.T()
		body := testutil.DtoMap(t, s.bookingRequest(), testutil.Field("email", nil))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, body, "")
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request")
	})
}

// =============================================================================
// TestCreateBookingIdempotency
// =============================================================================

func (s *BookingSuite) TestCreateBookingIdempotency() {
	s.Run("Normal case: a retried request replays the first booking", func() {
		t := s.T()
		headers := map[string]string{api.HeaderIdempotencyKey: uuid.NewString()}
		body := s.bookingRequest()

		first := s.createBooking(t, body, headers)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, body, headers)
		var second response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		assert.Equal(t, "true", w.Header().Get(api.HeaderIdempotentReplayed))
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "bookings"))
	})

	s.Run("Error case: the same key with another payload conflicts", func() {
		t := s.T()
		headers := map[string]string{api.HeaderIdempotencyKey: uuid.NewString()}
		s.createBooking(t, s.bookingRequest(), headers)

		other := builder.NewBookingBuilder().WithTravelers(4).WithBookingDate(nextMonth()).BuildCreateRequestDTO()
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, other, headers)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "bookings"))
	})

	s.Run("Error case: a key that is not a UUID is rejected", func() {
		t := s.T()
		headers := map[string]string{api.HeaderIdempotencyKey: "retry-1"}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, s.bookingRequest(), headers)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Idempotency-Key must be a UUID")
	})
}

// =============================================================================
// TestGetAndListBookings
// =============================================================================

func (s *BookingSuite) TestGetAndListBookings() {
	s.Run("Normal case: a created booking can be read back", func() {
		t := s.T()
		created := s.createBooking(t, s.bookingRequest(), nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, "")
		var got response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, created.Reference, got.Reference)
		assert.Equal(t, "200.00", got.TotalAmount)
	})

	s.Run("Error case: unknown booking is not found", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, uuid.NewString()), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})

	s.Run("Normal case: a traveler pages through only their own bookings", func() {
		t := s.T()
		userID := uuid.New()
		token := s.JWT.GenerateToken(t, userID, "maya@example.com")
		auth := map[string]string{"Authorization": "Bearer " + token}

		for range 3 {
			s.createBooking(t, s.bookingRequest(), auth)
		}
		s.createBooking(t, s.bookingRequest(), nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2", nil, token)
		var page response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 2)
		require.NotEmpty(t, page.NextCursor)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?limit=2&after="+page.NextCursor, nil, token)
		var rest response.BookingListResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rest)
		require.Len(t, rest.Items, 1)
		assert.Empty(t, rest.NextCursor)

		seen := map[string]bool{}
		for _, it := range append(page.Items, rest.Items...) {
			assert.False(t, seen[it.ID], "booking %s listed twice", it.ID)
			seen[it.ID] = true
		}
	})

	s.Run("Error case: listing requires a token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "")
	})
}

// =============================================================================
// TestPaymentFlow
// =============================================================================

func (s *BookingSuite) TestPaymentFlow() {
	s.Run("Normal case: payment intent is issued in minor units", func() {
		t := s.T()
		created := s.createBooking(t, s.bookingRequest(), nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(paymentIntentURL, created.ID), nil, "")
		var intent response.PaymentIntentResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &intent)
		assert.Equal(t, created.ID, intent.BookingID)
		assert.Equal(t, int64(20000), intent.AmountMinor)
		assert.Equal(t, "200.00", intent.Amount)
		assert.NotEmpty(t, intent.ClientSecretOrSessionURL)

		state := dbtest.LoadBookingState(t, s.DB, uuid.MustParse(created.ID))
		require.NotNil(t, state.PaymentSessionID)
		assert.Equal(t, intent.SessionID, *state.PaymentSessionID)
		assert.Equal(t, "pending", state.Status)
	})

	s.Run("Normal case: success redirect confirms a paid session once and then reports already confirmed", func() {
		t := s.T()
		created := s.createBooking(t, s.bookingRequest(), nil)
		intent := s.issueIntent(t, created.ID)
		s.Provider.Pay(intent.SessionID)
		url := fmt.Sprintf(paymentSuccessURL, created.ID, intent.SessionID)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		var first response.ConfirmationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)
		assert.Equal(t, api.ConfirmationConfirmed, first.Status)
		assert.Equal(t, created.Reference, first.Reference)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		var second response.ConfirmationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		assert.Equal(t, api.ConfirmationAlreadyConfirmed, second.Status)

		state := dbtest.LoadBookingState(t, s.DB, uuid.MustParse(created.ID))
		assert.Equal(t, "confirmed", state.Status)
		assert.Equal(t, "paid", state.PaymentStatus)
	})

	s.Run("Normal case: success redirect without payment leaves the booking pending", func() {
		t := s.T()
		created := s.createBooking(t, s.bookingRequest(), nil)
		intent := s.issueIntent(t, created.ID)

		for _, url := range []string{
			fmt.Sprintf(paymentSuccessURL, created.ID, intent.SessionID),
			fmt.Sprintf(paymentSuccessURL, created.ID, ""),
			"/api/payments/success?booking=" + created.ID,
		} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
			var page response.ConfirmationResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
			assert.Equal(t, api.ConfirmationUnverified, page.Status, url)
		}

		state := dbtest.LoadBookingState(t, s.DB, uuid.MustParse(created.ID))
		assert.Equal(t, "pending", state.Status)
		assert.Equal(t, "pending", state.PaymentStatus)
	})

	s.Run("Normal case: success redirect for an unknown booking still renders", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(paymentSuccessURL, uuid.NewString(), "cs_test_0001"), nil, "")
		var page response.ConfirmationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		assert.Equal(t, api.ConfirmationUnverified, page.Status)
	})

	s.Run("Error case: a confirmed booking cannot get another intent", func() {
		t := s.T()
		created := s.createBooking(t, s.bookingRequest(), nil)
		intent := s.issueIntent(t, created.ID)
		s.Provider.Pay(intent.SessionID)
		httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(paymentSuccessURL, created.ID, intent.SessionID), nil, "")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(paymentIntentURL, created.ID), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Booking is not awaiting payment")
	})
}

// =============================================================================
// TestCheckout
// =============================================================================

func (s *BookingSuite) TestCheckout() {
	s.Run("Normal case: booking and intent in one call", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, s.bookingRequest(), "")
		var got response.CheckoutResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &got)
		require.NotNil(t, got.Booking)
		require.NotNil(t, got.Payment)
		assert.Equal(t, got.Booking.ID, got.Payment.BookingID)
		assert.Equal(t, int64(20000), got.Payment.AmountMinor)
	})

	s.Run("Error case: provider outage keeps the pending booking", func() {
		t := s.T()
		s.Provider.FailWith(fmt.Errorf("provider unavailable"))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL, s.bookingRequest(), "")
		httptest.AssertErrorResponse(t, w, http.StatusBadGateway, "Failed to initialize payment")

		assert.Equal(t, 1, dbtest.CountRows(t, s.DB, "bookings"))
	})
}

// =============================================================================
// TestWebhook
// =============================================================================

func (s *BookingSuite) TestWebhook() {
	s.Run("Normal case: a paid checkout session confirms the booking once", func() {
		t := s.T()
		created := s.createBooking(t, s.bookingRequest(), nil)

		event := harness.FakeEvent{
			ID:                "evt_1",
			Type:              "checkout.session.completed",
			SessionID:         "cs_test_e2e",
			ClientReferenceID: created.ID,
			PaymentStatus:     "paid",
		}
		headers := map[string]string{"Stripe-Signature": harness.FakeSignature, "Content-Type": "application/json"}

		w := httptest.PerformRawRequest(s.Router, http.MethodPost, webhookURL, event.Payload(), headers)
		var first response.WebhookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)
		assert.Equal(t, "confirmed", first.Action)

		w = httptest.PerformRawRequest(s.Router, http.MethodPost, webhookURL, event.Payload(), headers)
		var second response.WebhookResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &second)
		assert.Equal(t, "already_confirmed", second.Action)

		state := dbtest.LoadBookingState(t, s.DB, uuid.MustParse(created.ID))
		assert.Equal(t, "confirmed", state.Status)
		assert.Equal(t, "paid", state.PaymentStatus)
	})

	s.Run("Error case: a bad signature is rejected", func() {
		t := s.T()
		event := harness.FakeEvent{ID: "evt_2", Type: "checkout.session.completed"}

		w := httptest.PerformRawRequest(s.Router, http.MethodPost, webhookURL, event.Payload(),
			map[string]string{"Stripe-Signature": "t=1,v1=forged"})
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid signature")
	})
}

// =============================================================================
// TestPrice / TestOutboxRelay
// =============================================================================

func (s *BookingSuite) TestPrice() {
	s.Run("Normal case: price lookup for a catalog adventure", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(priceURL, "tour-42"), nil, "")
		var got response.PriceResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, "100.00", got.PricePerPerson)
	})

	s.Run("Error case: unknown adventure", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(priceURL, "does-not-exist"), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Adventure not found")
	})
}

func (s *BookingSuite) TestOutboxRelay() {
	s.Run("Normal case: booking events reach the bus", func() {
		t := s.T()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		msgs, err := s.Bus.Subscriber.Subscribe(ctx, shared.TopicBookingCreated)
		require.NoError(t, err)

		created := s.createBooking(t, s.bookingRequest(), nil)

		sent, err := s.Relay.DispatchOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, sent)

		// The in-memory bus replays earlier events to a new subscriber.
		found := false
		for !found {
			select {
			case msg := <-msgs:
				msg.Ack()
				found = strings.Contains(string(msg.Payload), created.ID)
			case <-ctx.Done():
				t.Fatal("booking_created event was not published")
			}
		}

		sent, err = s.Relay.DispatchOnce(ctx)
		require.NoError(t, err)
		assert.Zero(t, sent, "a sent job is not published again")
	})
}
