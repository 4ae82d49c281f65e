package middleware

import (
	"dailypay-backend/internal/auth"
	appErrors "dailypay-backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

func RoleMiddleware(allowedRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.Error(appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if identity.Role == allowed {
				c.Next()
				return
			}
		}

		c.Error(appErrors.ErrForbidden)
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware(auth.RoleAdmin)
}

func SellerOnly() gin.HandlerFunc {
	return RoleMiddleware(auth.RoleSeller)
}

func ShopperOnly() gin.HandlerFunc {
	return RoleMiddleware(auth.RoleUser, auth.RoleAdmin)
}
