package api

import (
	"net/http"

	"belizevibes-booking/internal/domain/booking"
	"belizevibes-booking/internal/handler/httperr"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// abortWithCommandError maps the command error kinds onto HTTP. Domain
// validation failures carry their details to the client.
func abortWithCommandError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errs.Is(err, commands.ErrValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", validationDetail(err))
	case errs.Is(err, commands.ErrAdventureNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Adventure not found", nil)
	case errs.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, commands.ErrBookingNotPayable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking is not awaiting payment", nil)
	case errs.Is(err, commands.ErrIdempotencyMismatch):
		httperr.AbortWithError(c, http.StatusConflict, err, "Idempotency key was used with a different request", nil)
	case errs.Is(err, commands.ErrIdempotencyInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request with this idempotency key is still being processed", nil)
	case errs.Is(err, commands.ErrPaymentProvider):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Failed to initialize payment", nil)
	case errs.Is(err, commands.ErrPersistence):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, fallbackMsg, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func validationDetail(err error) any {
	if cause := errs.Cause(err); cause != nil && cause != booking.ErrValidation {
		return cause.Error()
	}
	return nil
}

func abortRenderError(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render response", nil)
}
