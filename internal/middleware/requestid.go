package middleware

import (
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id in and out of the API
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation id, reusing the caller's
// X-Request-ID when present, and attaches a request-scoped logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		ctx = logger.WithSource(ctx, "api")
		ctx = logger.WithLogger(ctx, logger.Default().WithContext(ctx))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
