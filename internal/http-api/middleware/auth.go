package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a bearer token in the
// Authorization header and rejects anonymous requests with 401.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		if !setActorFromHeader(c, authService, authHeader) {
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware parses a bearer token when one is supplied but lets
// anonymous requests through. Routes behind it decide with RequireAdmin
// whether an anonymous caller is forbidden (403) rather than unauthenticated
// (401); public-read resources want the former for writes.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		if !setActorFromHeader(c, authService, authHeader) {
			return
		}
		c.Next()
	}
}

func setActorFromHeader(c *gin.Context, authService service.AuthService, authHeader string) bool {
	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		c.Abort()
		return false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return false
	}

	// Set user info in context for handlers to use
	c.Set("claims", claims)
	c.Set("userID", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("role", claims.Role)
	return true
}

// RequireAdmin rejects any request whose actor is not an admin. Anonymous
// requests reaching it (via OptionalAuthMiddleware) are forbidden, not
// unauthenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			c.Abort()
			return
		}

		role, ok := roleValue.(models.Role)
		if !ok || !role.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentActor pulls the authenticated actor out of the gin context.
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	claimsValue, exists := c.Get("claims")
	if !exists {
		return service.Actor{}, false
	}
	claims, ok := claimsValue.(*service.Claims)
	if !ok {
		return service.Actor{}, false
	}
	return claims.Actor(), true
}
