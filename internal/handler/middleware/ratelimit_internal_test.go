//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"belizevibes-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 2})
	limiter.now = func() time.Time { return now }

	router := gin.New()
	router.POST("/api/bookings", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
		req.RemoteAddr = ip + ":40000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusCreated, send("203.0.113.7").Code)
	assert.Equal(t, http.StatusCreated, send("203.0.113.7").Code)

	throttled := send("203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, throttled.Code)
	assert.Equal(t, "1", throttled.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusCreated, send("198.51.100.4").Code, "other clients keep their own budget")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusCreated, send("203.0.113.7").Code, "one token refills per second")
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	limiter.now = func() time.Time { return now }

	limiter.allow("203.0.113.7")
	now = now.Add(limiterIdleTTL + time.Second)
	limiter.allow("198.51.100.4")

	_, stale := limiter.clients["203.0.113.7"]
	assert.False(t, stale)
	assert.Len(t, limiter.clients, 1)
}
