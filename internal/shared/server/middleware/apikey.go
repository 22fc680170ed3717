package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"screening-backend/internal/shared/server/respond"
)

// APIKey gates dashboard routes on a shared key. When no key is configured
// (dev and local environments) every request passes, mirroring the
// dashboard's client-side authenticated flag.
func APIKey(key, env string) gin.HandlerFunc {
	required := strings.TrimSpace(key)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if required == "" {
			if env == "production" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "API key not configured", nil)
				return
			}
			c.Next()
			return
		}

		presented := strings.TrimSpace(c.GetHeader("X-Api-Key"))
		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(required)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid API key", nil)
			return
		}

		c.Next()
	}
}
