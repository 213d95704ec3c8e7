//go:build unit

package payment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	dompayment "belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/infra/payment"
	"belizevibes-booking/internal/pkg/config"
	"belizevibes-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79/webhook"
)

type capturedRequest struct {
	path           string
	idempotencyKey string
	form           map[string]string
}

func newStripeStub(t *testing.T, response string) (*httptest.Server, func() capturedRequest) {
	t.Helper()
	var mu sync.Mutex
	var captured capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			form[k] = r.PostForm.Get(k)
		}
		mu.Lock()
		captured = capturedRequest{
			path:           r.URL.Path,
			idempotencyKey: r.Header.Get("Idempotency-Key"),
			form:           form,
		}
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return srv, func() capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return captured
	}
}

func testPaymentConfig(baseURL string) config.PaymentConfig {
	cfg := config.NewTestConfig().Payment
	cfg.APIBaseURL = baseURL
	cfg.MaxRetries = 0
	cfg.SuccessURL = "https://belizevibes.test/payment-success?booking={BOOKING_ID}&session_id={CHECKOUT_SESSION_ID}"
	cfg.CancelURL = "https://belizevibes.test/booking?canceled=1&booking={BOOKING_ID}"
	return cfg
}

func TestStripeProvider_CreateSession(t *testing.T) {
	srv, captured := newStripeStub(t, `{
		"id": "cs_test_a1",
		"object": "checkout.session",
		"url": "https://checkout.stripe.com/c/pay/cs_test_a1",
		"amount_total": 20000,
		"currency": "usd",
		"payment_status": "unpaid"
	}`)

	provider, err := payment.NewStripeProvider(testPaymentConfig(srv.URL))
	require.NoError(t, err)

	bookingID := uuid.New()
	session, err := provider.CreateSession(context.Background(), dompayment.SessionRequest{
		BookingID:      bookingID,
		Reference:      "BV-7fKq2mXa9P",
		Description:    "BV-7fKq2mXa9P: tour-42 for 2 on 2026-11-20",
		AmountMinor:    20000,
		Currency:       "USD",
		CustomerEmail:  "maya@example.com",
		IdempotencyKey: "intent-" + bookingID.String(),
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_a1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_a1", session.Handle())
	assert.Equal(t, int64(20000), session.AmountMinor)
	assert.Equal(t, "USD", session.Currency)

	req := captured()
	assert.Equal(t, "/v1/checkout/sessions", req.path)
	assert.Equal(t, "intent-"+bookingID.String(), req.idempotencyKey)
	assert.Equal(t, "payment", req.form["mode"])
	assert.Equal(t, bookingID.String(), req.form["client_reference_id"])
	assert.Equal(t, "maya@example.com", req.form["customer_email"])
	assert.Equal(t, "20000", req.form["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "usd", req.form["line_items[0][price_data][currency]"])
	assert.Equal(t, "1", req.form["line_items[0][quantity]"])
	assert.Equal(t, "https://belizevibes.test/payment-success?booking="+bookingID.String()+"&session_id={CHECKOUT_SESSION_ID}", req.form["success_url"])
	assert.Equal(t, bookingID.String(), req.form["metadata[booking_id]"])
}

func TestStripeProvider_CreateSessionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Amount must be at least 50 cents"}}`))
	}))
	t.Cleanup(srv.Close)

	provider, err := payment.NewStripeProvider(testPaymentConfig(srv.URL))
	require.NoError(t, err)

	_, err = provider.CreateSession(context.Background(), dompayment.SessionRequest{
		BookingID:   uuid.New(),
		AmountMinor: 10,
		Currency:    "USD",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount must be at least 50 cents")
}

func TestStripeProvider_RetrieveSession(t *testing.T) {
	bookingID := uuid.New().String()
	srv, captured := newStripeStub(t, `{
		"id": "cs_test_a1",
		"object": "checkout.session",
		"amount_total": 20000,
		"currency": "usd",
		"client_reference_id": "`+bookingID+`",
		"payment_status": "paid"
	}`)

	provider, err := payment.NewStripeProvider(testPaymentConfig(srv.URL))
	require.NoError(t, err)

	session, err := provider.RetrieveSession(context.Background(), "cs_test_a1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/checkout/sessions/cs_test_a1", captured().path)
	assert.Equal(t, bookingID, session.ClientReferenceID)
	assert.True(t, session.IsPaid())
	assert.Equal(t, int64(20000), session.AmountMinor)
}

func TestNewStripeProvider_RejectsKeyForWrongMode(t *testing.T) {
	cfg := testPaymentConfig("")
	cfg.Mode = config.PaymentModeLive

	_, err := payment.NewStripeProvider(cfg)
	assert.ErrorIs(t, err, config.ErrPaymentKeyMismatch)
}

func TestStripeProvider_ParseEvent(t *testing.T) {
	cfg := testPaymentConfig("")
	provider, err := payment.NewStripeProvider(cfg)
	require.NoError(t, err)

	bookingID := uuid.New().String()
	completed := []byte(`{
		"id": "evt_1",
		"object": "event",
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_a1",
			"object": "checkout.session",
			"client_reference_id": "` + bookingID + `",
			"payment_status": "paid"
		}}
	}`)

	sign := func(payload []byte, secret string) string {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: secret})
		return signed.Header
	}

	t.Run("valid signature yields checkout details", func(t *testing.T) {
		ev, err := provider.ParseEvent(completed, sign(completed, cfg.WebhookSecret))
		require.NoError(t, err)

		assert.Equal(t, "evt_1", ev.ID)
		assert.Equal(t, dompayment.EventCheckoutCompleted, ev.Type)
		assert.Equal(t, "cs_test_a1", ev.SessionID)
		assert.Equal(t, bookingID, ev.ClientReferenceID)
		assert.True(t, ev.IsPaid())
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		_, err := provider.ParseEvent(completed, sign(completed, "whsec_someone_else"))
		assert.True(t, errs.Is(err, dompayment.ErrInvalidSignature))
	})

	t.Run("missing signature is rejected", func(t *testing.T) {
		_, err := provider.ParseEvent(completed, "")
		assert.True(t, errs.Is(err, dompayment.ErrInvalidSignature))
	})

	t.Run("tampered payload is rejected", func(t *testing.T) {
		header := sign(completed, cfg.WebhookSecret)
		tampered := []byte(string(completed) + " ")
		_, err := provider.ParseEvent(tampered, header)
		assert.True(t, errs.Is(err, dompayment.ErrInvalidSignature))
	})

	t.Run("non checkout events carry only id and type", func(t *testing.T) {
		payload := []byte(`{"id":"evt_2","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1","object":"charge"}}}`)
		ev, err := provider.ParseEvent(payload, sign(payload, cfg.WebhookSecret))
		require.NoError(t, err)

		assert.Equal(t, dompayment.EventType("charge.refunded"), ev.Type)
		assert.Empty(t, ev.SessionID)
	})
}
