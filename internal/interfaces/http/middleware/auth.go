package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"lusdt-bridge.backend/internal/domain/entities"
	"lusdt-bridge.backend/pkg/jwt"
)

const (
	// CallerRolesKey holds the entities.RoleSet derived from the token.
	CallerRolesKey = "caller_roles"
	// CallerAddressKey holds the operator address from the token subject.
	CallerAddressKey = "caller_address"
)

// AuthMiddleware validates the bearer token and materializes the caller's
// role set for downstream authorization checks.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing bearer token",
			})
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": err.Error(),
			})
			return
		}

		roles := make([]entities.Role, 0, len(claims.Roles))
		for _, r := range claims.Roles {
			roles = append(roles, entities.Role(r))
		}
		c.Set(CallerRolesKey, entities.NewRoleSet(roles...))
		c.Set(CallerAddressKey, claims.Address)
		c.Next()
	}
}

// CallerRoles returns the role set placed in the context by AuthMiddleware.
func CallerRoles(c *gin.Context) entities.RoleSet {
	if v, ok := c.Get(CallerRolesKey); ok {
		if roles, ok := v.(entities.RoleSet); ok {
			return roles
		}
	}
	return entities.RoleSet{}
}

// CallerAddress returns the operator address placed in the context by
// AuthMiddleware.
func CallerAddress(c *gin.Context) string {
	return c.GetString(CallerAddressKey)
}
