package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docai-backend/internal/shared/server/respond"
)

const apiKeyHeader = "X-API-Key"

// APIKey gates requests behind a static pre-shared key. With an empty key
// the middleware is a no-op, matching an unconfigured deployment.
func APIKey(key string) gin.HandlerFunc {
	expected := []byte(strings.TrimSpace(key))

	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}

		presented := strings.TrimSpace(c.GetHeader(apiKeyHeader))
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid or missing API key", nil)
			return
		}

		c.Next()
	}
}
