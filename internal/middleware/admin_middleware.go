package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	apperrors "github.com/kdas/shopkart-backend/internal/errors"
	"github.com/kdas/shopkart-backend/pkg/logger"
)

const adminSecretHeader = "X-Admin-Secret"

// AdminMiddleware guards admin routes with a single shared secret carried
// in the X-Admin-Secret header.
type AdminMiddleware struct {
	secret string
}

func NewAdminMiddleware(secret string) *AdminMiddleware {
	return &AdminMiddleware{secret: secret}
}

// Require rejects requests whose header does not match the configured
// secret. The comparison is constant-time.
func (m *AdminMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader(adminSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.secret)) != 1 {
			logger.Warn("Admin request rejected", map[string]interface{}{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			})
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
