package requestid

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// Header carries the request ID on both the request and the response.
	Header = "X-Request-ID"

	correlationHeader = "X-Correlation-ID"
	contextKey        = "request_id"
	maxLength         = 128
)

// Middleware tags every request with an ID. A client-supplied X-Request-ID (or X-Correlation-ID)
// is reused when it is short and made of safe characters; anything else gets a fresh UUID.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := incoming(c)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set(contextKey, reqID)
		c.Writer.Header().Set(Header, reqID)

		c.Next()
	}
}

func incoming(c *gin.Context) string {
	for _, h := range []string{Header, correlationHeader} {
		if id := strings.TrimSpace(c.GetHeader(h)); valid(id) {
			return id
		}
	}
	return ""
}

// valid keeps IDs printable so they are safe to echo back and to write into logs.
func valid(id string) bool {
	if id == "" || len(id) > maxLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':', r == '/':
		default:
			return false
		}
	}
	return true
}

// Value returns the request ID stored in the Gin context.
func Value(c *gin.Context) string {
	if v, exists := c.Get(contextKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
