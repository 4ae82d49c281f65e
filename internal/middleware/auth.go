package middleware

import (
	"strings"

	"dailypay-backend/internal/auth"
	"dailypay-backend/internal/logger"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// AuthMiddleware requires a session token from the Authorization header or,
// failing that, the session cookie.
func AuthMiddleware(tokens *auth.TokenIssuer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			c.Error(appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		identity, err := tokens.Verify(token)
		if err != nil {
			logger.Debug("Rejected session token",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Error(appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetIdentity returns the identity attached by AuthMiddleware.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

// MustIdentity is GetIdentity for handlers mounted behind AuthMiddleware.
func MustIdentity(c *gin.Context) auth.Identity {
	identity, ok := GetIdentity(c)
	if !ok {
		panic("middleware: identity missing, route is not behind AuthMiddleware")
	}
	return identity
}
