package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"starterkit/src/app/http/response"
)

// TokenAuth guards mutating diagnostic routes with a static bearer token.
// When no token is configured, every request is rejected: the guarded
// routes are effectively disabled rather than silently open.
func TokenAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		if token == "" {
			response.Unauthorized(c, "diagnostics token not configured", requestID)
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || presented == "" {
			response.Unauthorized(c, "missing bearer token", requestID)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			response.Unauthorized(c, "invalid token", requestID)
			c.Abort()
			return
		}

		c.Next()
	}
}
