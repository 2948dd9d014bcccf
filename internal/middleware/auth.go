package middleware

import (
	"errors"
	"net/http"
	"strings"

	"authservice/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys under which verified claims are stored for downstream handlers.
const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
)

// AuthMiddleware creates a Gin middleware that gates requests on a valid
// Bearer token. Rejected requests are terminated immediately; the downstream
// handler never runs.
func AuthMiddleware(tokens *token.Manager, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				c.Abort()
				return
			}
			logger.Debug("Rejected token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)

		c.Next()
	}
}
