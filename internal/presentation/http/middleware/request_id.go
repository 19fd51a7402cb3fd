package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/buildsight/hubview-go/internal/infrastructure/security"
)

// RequestIDHeader is the response header carrying the per-request ULID.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with a ULID so log lines from one
// request can be correlated across channels.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = security.GenerateULID()
		}

		c.Set("requestId", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
