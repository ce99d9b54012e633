package middleware

import (
	"net/http"

	"vetclinic/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets requests through whose identity carries one of
// the allowed roles. Assumes Auth ran earlier and set the identity.
//
// Example:
//
//	users.POST("", middleware.RequireRoles(domain.RoleAdmin), h.CreateUser)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		if canonical, ok := domain.Roles.Canonical(r); ok {
			allowed[canonical] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if _, ok := allowed[identity.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
