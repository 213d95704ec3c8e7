package api

import (
	"log/slog"
	"net/http"

	"belizevibes-booking/internal/domain/payment"
	resdto "belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/handler/httperr"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

const (
	headerProviderSignature = "Stripe-Signature"
	maxWebhookBodyBytes     = 64 << 10

	ConfirmationConfirmed        = "confirmed"
	ConfirmationAlreadyConfirmed = "already_confirmed"
	ConfirmationUnverified       = "unverified"
)

type PaymentHandler struct {
	reconcile commands.ReconciliationCommands
}

func NewPaymentHandler(reconcile commands.ReconciliationCommands) *PaymentHandler {
	return &PaymentHandler{reconcile: reconcile}
}

// @Summary Payment success landing
// @Description Confirms the booking named by the provider redirect once the provider
// @Description reports its checkout session paid. The page always renders; a failed
// @Description confirmation is reported as unverified and logged.
// @Tags payments
// @Produce json
// @Param booking query string true "Booking ID"
// @Param session_id query string true "Checkout session ID"
// @Success 200 {object} resdto.ConfirmationResponse
// @Router /api/payments/success [get]
func (h *PaymentHandler) Success(c *gin.Context) {
	raw := c.Query("booking")
	sessionID := c.Query("session_id")

	result, err := h.reconcile.ConfirmRedirect(c.Request.Context(), raw, sessionID)
	if err != nil {
		level := slog.LevelError
		if errs.Is(err, commands.ErrNotFoundOrAlreadyConfirmed) ||
			errs.Is(err, commands.ErrMalformedBookingID) ||
			errs.Is(err, commands.ErrPaymentUnverified) {
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "Payment confirmation failed on success page",
			"booking", raw,
			"session_id", sessionID,
			"error", err.Error())
		_ = c.Error(err)
		c.JSON(http.StatusOK, resdto.ConfirmationResponse{
			Status:  ConfirmationUnverified,
			Message: "Thank you! We are verifying your payment and will email your confirmation shortly.",
		})
		return
	}

	status := ConfirmationConfirmed
	if result.AlreadyConfirmed {
		status = ConfirmationAlreadyConfirmed
	}
	c.JSON(http.StatusOK, resdto.ConfirmationResponse{
		BookingID: result.Booking.ID().String(),
		Reference: result.Booking.Reference(),
		Status:    status,
		Message:   "Your adventure is booked. A confirmation email is on its way.",
	})
}

// @Summary Payment provider webhook
// @Description Receives checkout session events. Only a bad signature or a storage
// @Description failure is answered with an error, so the provider retries the latter.
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Provider signature"
// @Success 200 {object} resdto.WebhookResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := c.GetRawData()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable payload", nil)
		return
	}

	outcome, err := h.reconcile.HandleProviderEvent(c.Request.Context(), payload, c.GetHeader(headerProviderSignature))
	if err != nil {
		if errs.Is(err, payment.ErrInvalidSignature) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid signature", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to process event", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.WebhookResponse{Received: true, Action: string(outcome.Action)})
}
