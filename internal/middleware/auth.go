package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetsync/internal/jwt"
)

const (
	// ContextUserID is the gin context key for the authenticated user ID.
	ContextUserID = "auth_user_id"
	// ContextUserRole is the gin context key for the authenticated role.
	ContextUserRole = "auth_user_role"
)

// AuthRequired validates the Bearer token and stores the identity on
// the request context.
func AuthRequired(tokens *jwt.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose role does not match.
// It must run after AuthRequired.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}
