package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDContextKey is the gin context key holding the request ID.
	RequestIDContextKey = "request_id"
	// RequestIDHeader carries the request ID on both request and response.
	RequestIDHeader = "X-Request-ID"
)

// RequestID tags each request with an ID and echoes it back in the
// response header. A caller-supplied ID is kept so traces can span
// services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDContextKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
