package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	grpcmiddleware "user-service/internal/adapter/grpc/middleware"
	"user-service/pkg/logger"
	"user-service/pkg/metrics"
)

// RateLimiter returns a Gin middleware applying the shared token bucket per method, path and client IP.
// A nil or disabled limiter lets every request through.
func RateLimiter(limiter *grpcmiddleware.RateLimiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		key := c.Request.Method + ":" + c.Request.URL.Path + ":" + c.ClientIP()

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Fail open
			logger.WithContext(c.Request.Context(), log).Warn("rate limiter redis error, allowing request",
				zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if !allowed {
			cfg := limiter.Config()
			metrics.RateLimitedTotal.Inc()
			logger.WithContext(c.Request.Context(), log).Warn("rate limit exceeded",
				zap.String("key", key),
				zap.Float64("limit", cfg.RequestsPerSecond),
				zap.Int("burst", cfg.BurstCapacity),
			)
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(cfg.RequestsPerSecond)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

// retryAfterSeconds is the time one token takes to refill, at least one second
func retryAfterSeconds(rps float64) int {
	if rps <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/rps)))
}
