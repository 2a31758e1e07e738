package middleware

import (
	"net/http"
	"strings"

	"talento_backend/internal/auth"
	"talento_backend/internal/logger"
	"talento_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
)

// BearerOrCookieToken extracts the access token from the Authorization
// header, falling back to the session cookie.
func BearerOrCookieToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if token, err := c.Cookie(CookieAccessToken); err == nil {
		return token
	}
	return ""
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := BearerOrCookieToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		claims, err := issuer.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("onboarded", claims.Onboarded)
		c.Next()
	}
}

// RequireRoles restricts a route to the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user ID from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}

	return id
}
