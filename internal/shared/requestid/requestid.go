// Package requestid tags every request with a correlation id.
package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header carries the request id on both requests and responses.
const Header = "X-Request-ID"

// ContextKey is the Gin context key holding the request id.
const ContextKey = "requestID"

// Middleware returns a Gin middleware that honours an incoming
// X-Request-ID header or generates a fresh uuid, exposing the value on
// the context and the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}
