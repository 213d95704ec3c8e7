//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/domain/payment"
	"belizevibes-booking/internal/handler/api"
	resdto "belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/commands"
	"belizevibes-booking/tests/common/builder"
	"belizevibes-booking/tests/common/httptest"
	usecasemock "belizevibes-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupPaymentRouter(t *testing.T) (*gin.Engine, *usecasemock.MockReconciliationCommands) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	mockReconcile := usecasemock.NewMockReconciliationCommands(ctrl)
	h := api.NewPaymentHandler(mockReconcile)

	router := gin.New()
	router.GET("/api/payments/success", h.Success)
	router.POST("/api/payments/webhook", h.Webhook)
	return router, mockReconcile
}

// ================================================================================
// Success page
// ================================================================================

func TestPaymentHandler_Success(t *testing.T) {
	confirmed := booking.Reconstruct(builder.NewBookingBuilder().WithStatus(booking.StatusConfirmed, booking.PaymentPaid).BuildSnapshot())
	url := "/api/payments/success?booking=" + confirmed.ID().String() + "&session_id=cs_test_0001"

	testCases := []struct {
		name         string
		setupMock    func(m *usecasemock.MockReconciliationCommands)
		expectStatus string
		expectRef    string
	}{
		{
			name: "first visit confirms",
			setupMock: func(m *usecasemock.MockReconciliationCommands) {
				m.EXPECT().ConfirmRedirect(gomock.Any(), confirmed.ID().String(), "cs_test_0001").
					Return(&commands.ReconciliationResult{Booking: confirmed}, nil)
			},
			expectStatus: api.ConfirmationConfirmed,
			expectRef:    confirmed.Reference(),
		},
		{
			name: "reload is already confirmed",
			setupMock: func(m *usecasemock.MockReconciliationCommands) {
				m.EXPECT().ConfirmRedirect(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&commands.ReconciliationResult{Booking: confirmed, AlreadyConfirmed: true}, nil)
			},
			expectStatus: api.ConfirmationAlreadyConfirmed,
			expectRef:    confirmed.Reference(),
		},
		{
			name: "unknown booking still renders",
			setupMock: func(m *usecasemock.MockReconciliationCommands) {
				m.EXPECT().ConfirmRedirect(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errs.Mark(errors.New("no rows"), commands.ErrNotFoundOrAlreadyConfirmed))
			},
			expectStatus: api.ConfirmationUnverified,
		},
		{
			name: "unpaid session still renders",
			setupMock: func(m *usecasemock.MockReconciliationCommands) {
				m.EXPECT().ConfirmRedirect(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errs.Mark(errors.New("session cs_test_0001 is unpaid"), commands.ErrPaymentUnverified))
			},
			expectStatus: api.ConfirmationUnverified,
		},
		{
			name: "storage failure still renders",
			setupMock: func(m *usecasemock.MockReconciliationCommands) {
				m.EXPECT().ConfirmRedirect(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errs.Mark(errors.New("connection reset"), commands.ErrReconciliation))
			},
			expectStatus: api.ConfirmationUnverified,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, mockReconcile := setupPaymentRouter(t)
			tc.setupMock(mockReconcile)

			rec := httptest.PerformRequest(t, router, http.MethodGet, url, nil, "")

			var body resdto.ConfirmationResponse
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
			assert.Equal(t, tc.expectStatus, body.Status)
			assert.Equal(t, tc.expectRef, body.Reference)
			assert.NotEmpty(t, body.Message)
		})
	}

	t.Run("missing booking parameter", func(t *testing.T) {
		router, mockReconcile := setupPaymentRouter(t)
		mockReconcile.EXPECT().ConfirmRedirect(gomock.Any(), "", "").
			Return(nil, errs.Mark(errors.New("empty"), commands.ErrReconciliation))

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/payments/success", nil, "")

		var body resdto.ConfirmationResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, api.ConfirmationUnverified, body.Status)
	})
}

// ================================================================================
// Webhook
// ================================================================================

func TestPaymentHandler_Webhook(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	headers := map[string]string{"Stripe-Signature": "t=1,v1=abc", "Content-Type": "application/json"}

	t.Run("forwards the raw payload and signature", func(t *testing.T) {
		router, mockReconcile := setupPaymentRouter(t)
		mockReconcile.EXPECT().HandleProviderEvent(gomock.Any(), payload, "t=1,v1=abc").
			Return(&commands.EventOutcome{EventID: "evt_1", Action: commands.ActionConfirmed}, nil)

		rec := httptest.PerformRawRequest(router, http.MethodPost, "/api/payments/webhook", payload, headers)

		var body resdto.WebhookResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.True(t, body.Received)
		assert.Equal(t, "confirmed", body.Action)
	})

	t.Run("bad signature is 400", func(t *testing.T) {
		router, mockReconcile := setupPaymentRouter(t)
		mockReconcile.EXPECT().HandleProviderEvent(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("no valid signature"), payment.ErrInvalidSignature))

		rec := httptest.PerformRawRequest(router, http.MethodPost, "/api/payments/webhook", payload, headers)
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "Invalid signature")
	})

	t.Run("storage failure is 500 so the provider retries", func(t *testing.T) {
		router, mockReconcile := setupPaymentRouter(t)
		mockReconcile.EXPECT().HandleProviderEvent(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errors.New("connection reset"), commands.ErrReconciliation))

		rec := httptest.PerformRawRequest(router, http.MethodPost, "/api/payments/webhook", payload, headers)
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Failed to process event")
	})
}
