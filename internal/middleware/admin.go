package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"membership_system/internal/utils"
)

// AccessHeader carries the admin access code on every admin request. There
// is no session: each request is re-checked against the configured digest.
const AccessHeader = "X-Admin-Access"

// AdminGate verifies the access code header against one fixed SHA-256 hex
// digest. An empty attempt is denied outright, never compared.
func AdminGate(digest string) gin.HandlerFunc {
	return func(c *gin.Context) {
		attempt := c.GetHeader(AccessHeader)
		if attempt == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing access code"})
			return
		}

		sum := utils.SHA256Hex(attempt)
		if subtle.ConstantTimeCompare([]byte(sum), []byte(digest)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}
