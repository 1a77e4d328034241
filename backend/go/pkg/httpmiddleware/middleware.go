// Package httpmiddleware provides gin middleware shared by the HTTP surface.
package httpmiddleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"VaultMind/backend/go/pkg/ratelimiter"
)

// TraceIDHeader carries the request trace id in and out of the service.
const TraceIDHeader = "X-Trace-Id"

// TraceID ensures every request carries a trace id, generating one when the
// client did not send any, and echoes it on the response.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		c.Set("traceID", traceID)
		c.Header(TraceIDHeader, traceID)
		c.Next()
	}
}

// RateLimit rejects requests with 429 once the limiter's budget is spent.
func RateLimit(limiter ratelimiter.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
