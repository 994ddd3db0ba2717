// Package middleware guards the API routes: token validation and role
// checks, in that order.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safetysight/auth"
	"safetysight/types"
)

const identityKey = "identity"

// Auth validates the bearer token and injects the session identity into the
// request context.
func Auth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		token, err := auth.ExtractToken(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityKey, &types.Identity{
			ID:   claims.Subject,
			Name: claims.Name,
			Role: claims.Role,
			Zone: claims.Zone,
		})
		c.Next()
	}
}

// CurrentIdentity returns the session identity injected by Auth.
func CurrentIdentity(c *gin.Context) (*types.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*types.Identity)
	return ident, ok
}

// RequireRole rejects requests whose session role is not in the allow list.
func RequireRole(allowed ...types.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		for _, role := range allowed {
			if ident.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
