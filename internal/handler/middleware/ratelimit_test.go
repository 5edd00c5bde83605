package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/clock"
	"storefront-checkout/internal/pkg/ratelimit"
	"storefront-checkout/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	routes []string
}

func (o *countingObserver) RateLimited(route string) {
	o.routes = append(o.routes, route)
}

func newLimitedRouter(limiter *ratelimit.Limiter, observer middleware.RateLimitObserver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/api/orders", middleware.RateLimit(limiter, "orders", observer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC))
	observer := &countingObserver{}
	router := newLimitedRouter(ratelimit.New(2, time.Minute, clk), observer)

	for i := range 2 {
		rec := httptest.PerformRequest(t, router, http.MethodPost, "/api/orders", nil, "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}
	clk.Add(20 * time.Second)

	rec := httptest.PerformRequest(t, router, http.MethodPost, "/api/orders", nil, "")

	body := httptest.AssertErrorCode(t, rec, http.StatusTooManyRequests, "RATE_LIMITED")
	assert.JSONEq(t, `{"retryAfterMs":40000}`, string(body.Detail))
	httptest.AssertHeaders(t, rec, map[string]string{
		"Retry-After":           "40",
		"X-RateLimit-Limit":     "2",
		"X-RateLimit-Remaining": "0",
	})
	assert.Equal(t, []string{"orders"}, observer.routes)
}

func TestRateLimitWindowResets(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC))
	router := newLimitedRouter(ratelimit.New(1, time.Minute, clk), nil)

	rec := httptest.PerformRequest(t, router, http.MethodPost, "/api/orders", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = httptest.PerformRequest(t, router, http.MethodPost, "/api/orders", nil, "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	clk.Add(time.Minute)

	rec = httptest.PerformRequest(t, router, http.MethodPost, "/api/orders", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	httptest.AssertHeaders(t, rec, map[string]string{"X-RateLimit-Remaining": "0"})
}

func TestRateLimitKeysByClientIP(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 3, 14, 7, 0, 0, 0, time.UTC))
	router := newLimitedRouter(ratelimit.New(1, time.Minute, clk), nil)

	first := httptest.PerformRequestWithHeaders(t, router, http.MethodPost, "/api/orders", nil,
		map[string]string{"X-Forwarded-For": "10.0.0.1"})
	other := httptest.PerformRequestWithHeaders(t, router, http.MethodPost, "/api/orders", nil,
		map[string]string{"X-Forwarded-For": "10.0.0.2"})

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, other.Code)
}
