package api

import (
	"net/http"

	resdto "belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/handler/httperr"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkout commands.CheckoutCommands
}

func NewCheckoutHandler(checkout commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// @Summary Checkout
// @Description Create a pending booking and a payment intent for it in one call.
// @Description When the provider fails the booking is kept and returned in the error detail.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "UUID; replays the booking made with this key"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CheckoutResponse
// @Success 200 {object} resdto.CheckoutResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	params, ok := bindCreateParams(c, commands.EndpointCheckout)
	if !ok {
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), params)
	if result != nil && result.IsReplayed {
		c.Header(HeaderIdempotentReplayed, "true")
	}
	if err != nil {
		if result != nil && result.Booking != nil && errs.Is(err, commands.ErrPaymentProvider) {
			var detail any
			if b, rerr := resdto.FromBooking(result.Booking); rerr == nil {
				detail = resdto.CheckoutResponse{Booking: b}
			}
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Failed to initialize payment", detail)
			return
		}
		abortWithCommandError(c, err, "Failed to create booking")
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	b, err := resdto.FromBooking(result.Booking)
	if err != nil {
		abortRenderError(c, err)
		return
	}
	intent, err := resdto.FromIntent(result.Intent)
	if err != nil {
		abortRenderError(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+result.Booking.ID().String())
	c.JSON(status, resdto.CheckoutResponse{Booking: b, Payment: intent})
}
