package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hhgcare/hhg/internal/infrastructure/ratelimit"
	"github.com/hhgcare/hhg/internal/shared/biztime"
	"github.com/hhgcare/hhg/internal/shared/constants"
	"github.com/hhgcare/hhg/internal/shared/logger"
	"github.com/hhgcare/hhg/internal/shared/utils"
)

// RateLimitMiddleware puts the fixed-window limiter in front of routes. A
// limiter failure rejects the request with 503.
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	logger  logger.Interface
	now     func() time.Time
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, logger logger.Interface) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
		now:     biztime.NowUTC,
	}
}

// LimitByIP keys the counter on the client IP under namespace.
func (m *RateLimitMiddleware) LimitByIP(namespace string, limit int, window time.Duration) gin.HandlerFunc {
	return m.limit(limit, window, func(c *gin.Context) string {
		return fmt.Sprintf("%s:ip:%s", namespace, c.ClientIP())
	})
}

// LimitByActor keys the counter on the authenticated actor. It must run after
// AuthMiddleware.RequireAuth.
func (m *RateLimitMiddleware) LimitByActor(limit int, window time.Duration) gin.HandlerFunc {
	return m.limit(limit, window, func(c *gin.Context) string {
		return fmt.Sprintf("%s:%s", constants.RateLimitKeyAPI, c.GetString(constants.ContextKeyUserID))
	})
}

func (m *RateLimitMiddleware) limit(limit int, window time.Duration, keyFn func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		result, err := m.limiter.Check(c.Request.Context(), key, limit, window)
		if err != nil {
			m.logger.Errorw("rate limit check failed", "key", key, "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Header(constants.HeaderRateLimitLimit, strconv.Itoa(limit))
		c.Header(constants.HeaderRateLimitRemaining, strconv.Itoa(result.Remaining))
		c.Header(constants.HeaderRateLimitReset, strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.ResetAt.Sub(m.now()).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header(constants.HeaderRetryAfter, strconv.Itoa(retryAfter))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
