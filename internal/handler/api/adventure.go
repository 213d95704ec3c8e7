package api

import (
	"net/http"

	resdto "belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/handler/httperr"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/pricing"

	"github.com/gin-gonic/gin"
)

type AdventureHandler struct {
	resolver pricing.Resolver
}

func NewAdventureHandler(resolver pricing.Resolver) *AdventureHandler {
	return &AdventureHandler{resolver: resolver}
}

// @Summary Adventure price
// @Description Current per-person price of an adventure
// @Tags adventures
// @Produce json
// @Param id path string true "Adventure ID"
// @Success 200 {object} resdto.PriceResponse
// @Failure 404 {object} httperr.Response
// @Router /api/adventures/{id}/price [get]
func (h *AdventureHandler) GetPrice(c *gin.Context) {
	quote, err := h.resolver.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errs.Is(err, pricing.ErrAdventureNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Adventure not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resolve price", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.PriceResponse{
		AdventureID:    quote.AdventureID,
		PricePerPerson: quote.PricePerPerson.String(),
		Source:         string(quote.Source),
	})
}
