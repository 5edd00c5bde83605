package middleware

import (
	"math"
	"net/http"
	"strconv"

	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errs.New("rate limit exceeded")

const anonymousKey = "anonymous"

// RateLimitObserver is told about every rejected request.
type RateLimitObserver interface {
	RateLimited(route string)
}

type RateLimitDetail struct {
	RetryAfterMs int64 `json:"retryAfterMs"`
}

// RateLimit admits requests per client IP. A rejected request gets 429 with
// Retry-After in seconds and retryAfterMs in the body.
func RateLimit(limiter *ratelimit.Limiter, route string, observer RateLimitObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = anonymousKey
		}

		res := limiter.Allow(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if res.Allowed {
			c.Next()
			return
		}

		if observer != nil {
			observer.RateLimited(route)
		}
		retryMs := max(res.RetryAfter.Milliseconds(), 1)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
		httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
			httperr.CodeRateLimited, "Too many requests", RateLimitDetail{RetryAfterMs: retryMs})
	}
}
