package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/palletworks/portal/internal/ratelimit"
)

// MaxPayloadSize rejects request bodies over the byte cap before any handler
// reads them.
func MaxPayloadSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "payload too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// RateLimit counts requests per client IP under the named prefix and rejects
// anything over the limit with 429 and retry metadata. A failing counter
// store lets the request through: intake availability wins over strictness.
func RateLimit(limiter *ratelimit.Limiter, prefix string, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := c.ClientIP()
		if client == "" {
			client = "unknown"
		}

		result, err := limiter.Check(c.Request.Context(), prefix+":"+client, limit, window)
		if err != nil {
			logger.Warn("rate limit check failed, allowing request",
				slog.String("prefix", prefix),
				slog.String("error", err.Error()),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			retryAfter := int(result.RetryAfter / time.Second)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retryAfter": retryAfter,
			})
			return
		}

		c.Next()
	}
}
