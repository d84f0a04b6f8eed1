package http

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/iot-onboarding/internal/errors"
	"github.com/allisson/iot-onboarding/internal/httputil"
)

// AdminAPIKeyHeader carries the operator credential on admin requests.
const AdminAPIKeyHeader = "X-Admin-Api-Key"

// AdminAuthMiddleware guards the admin surface with a static API key.
//
// The comparison is constant time and every failure produces the same
// 401 response, so the middleware leaks nothing about whether a key is
// unknown, empty, or a near match.
//
// A server configured without an admin key rejects all admin requests.
func AdminAuthMiddleware(adminAPIKey string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminAPIKey == "" {
			logger.Error("admin authentication failed: no admin API key configured")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		presentedKey := c.GetHeader(AdminAPIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(presentedKey), []byte(adminAPIKey)) != 1 {
			logger.Debug("admin authentication failed: invalid api key",
				slog.String("client_ip", c.ClientIP()))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
