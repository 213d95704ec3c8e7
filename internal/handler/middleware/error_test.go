//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"belizevibes-booking/internal/handler/httperr"
	"belizevibes-booking/internal/handler/middleware"
	"belizevibes-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.CustomRecovery(), middleware.ErrorHandler())

	router.GET("/public", func(c *gin.Context) {
		_ = c.Error(gin.Error{
			Err:  errors.New("db down"),
			Type: gin.ErrorTypePublic,
			Meta: httperr.NewResponse(http.StatusServiceUnavailable, "Try again later", nil),
		})
	})
	router.GET("/private", func(c *gin.Context) {
		_ = c.Error(errors.New("unexpected"))
	})
	router.GET("/panic", func(_ *gin.Context) {
		panic("boom")
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	t.Run("public error is rendered", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/public", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusServiceUnavailable, "Try again later")
	})

	t.Run("private error becomes 500", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/private", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})

	t.Run("panic is recovered", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/panic", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})

	t.Run("written response is untouched", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/ok", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}

func TestAbortWithError_NilErrorIsRecorded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var recorded int
	router.GET("/unauthorized", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		recorded = len(c.Errors)
	})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/unauthorized", nil, "")

	httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Unauthorized")
	assert.Equal(t, 1, recorded)
}
