//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"belizevibes-booking/internal/domain/adventure"
	"belizevibes-booking/internal/domain/money"
	"belizevibes-booking/internal/handler/api"
	resdto "belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/pricing"
	"belizevibes-booking/tests/common/httptest"
	pricingmock "belizevibes-booking/tests/mock/pricing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAdventureHandler_GetPrice(t *testing.T) {
	testCases := []struct {
		name       string
		id         string
		setupMock  func(m *pricingmock.MockResolver)
		expectCode int
		expectBody *resdto.PriceResponse
	}{
		{
			name: "known adventure",
			id:   "tour-42",
			setupMock: func(m *pricingmock.MockResolver) {
				m.EXPECT().Resolve(gomock.Any(), "tour-42").Return(adventure.PriceQuote{
					AdventureID:    "tour-42",
					PricePerPerson: money.MustParse("100"),
					Source:         adventure.SourceFallback,
				}, nil)
			},
			expectCode: http.StatusOK,
			expectBody: &resdto.PriceResponse{AdventureID: "tour-42", PricePerPerson: "100.00", Source: "fallback"},
		},
		{
			name: "unknown adventure",
			id:   "does-not-exist",
			setupMock: func(m *pricingmock.MockResolver) {
				m.EXPECT().Resolve(gomock.Any(), "does-not-exist").
					Return(adventure.PriceQuote{}, errs.Mark(errors.New("no catalog entry"), pricing.ErrAdventureNotFound))
			},
			expectCode: http.StatusNotFound,
		},
		{
			name: "resolver failure",
			id:   "tour-42",
			setupMock: func(m *pricingmock.MockResolver) {
				m.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(adventure.PriceQuote{}, errors.New("boom"))
			},
			expectCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			ctrl := gomock.NewController(t)
			resolver := pricingmock.NewMockResolver(ctrl)
			tc.setupMock(resolver)

			router := gin.New()
			router.GET("/api/adventures/:id/price", api.NewAdventureHandler(resolver).GetPrice)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/adventures/"+tc.id+"/price", nil, "")

			if tc.expectBody == nil {
				httptest.AssertErrorResponse(t, rec, tc.expectCode, "")
				return
			}
			var body resdto.PriceResponse
			httptest.AssertSuccessResponse(t, rec, tc.expectCode, &body)
			assert.Equal(t, *tc.expectBody, body)
		})
	}
}
