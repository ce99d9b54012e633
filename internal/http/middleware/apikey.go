package middleware

import (
	"crypto/subtle"
	"net/http"

	"vetclinic/internal/utils"

	"github.com/gin-gonic/gin"
)

// APIKey is stage one of the auth gate: the shared X-API-Key header must
// exactly equal the configured secret. Runs before token logic so generic
// scanners never reach it. Comparison is constant time; the response body
// never says which part was wrong.
func APIKey(key string) gin.HandlerFunc {
	expected := []byte(key)

	return func(c *gin.Context) {
		got := c.GetHeader("X-API-Key")

		kind := "bad_key"
		if got == "" {
			kind = "missing_key"
		}
		if subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
			utils.LogEvent(GetRequestID(c), "auth", "api_key_rejected", kind)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
