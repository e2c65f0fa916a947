package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gstkit/internal/domain"
	"gstkit/internal/service"
)

const (
	ContextKeySubject = "subject"
	ContextKeyCompany = "company"
	ContextKeyClaims  = "claims"
)

// AuthMiddleware returns Gin middleware that validates bearer JWT tokens and
// injects the caller's subject and company.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyCompany, claims.Company)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetSubject extracts the authenticated subject from the Gin context.
func GetSubject(c *gin.Context) (string, error) {
	val, exists := c.Get(ContextKeySubject)
	if !exists {
		return "", domain.ErrUnauthorized
	}
	return val.(string), nil
}

// GetCompany returns the company the caller's token is scoped to, or "" for
// an unscoped token.
func GetCompany(c *gin.Context) string {
	val, exists := c.Get(ContextKeyCompany)
	if !exists {
		return ""
	}
	return val.(string)
}
