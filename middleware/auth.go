package middleware

import (
	"net/http"
	"strings"

	"finsight-backend/auth"
	"finsight-backend/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextUserID is the gin context key holding the authenticated user ID.
const ContextUserID = "userID"

// Auth validates the bearer token on every request and short-circuits with
// 401 before any handler logic runs.
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c.Request)
		if tokenString == "" {
			abortUnauthenticated(c, "Missing or invalid bearer token")
			return
		}

		userID, err := svc.ValidateToken(tokenString)
		if err != nil {
			logger.Get().Debug("token validation failed", zap.Error(err))
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the authenticated user ID stored by Auth.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHENTICATED",
			"message": message,
		},
	})
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
