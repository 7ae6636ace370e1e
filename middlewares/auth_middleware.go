package middlewares

import (
	"net/http"
	"strings"

	"github.com/Alianama/food-gamification-backend/config"
	"github.com/Alianama/food-gamification-backend/models"
	"github.com/Alianama/food-gamification-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and rejects tokens issued
// before the user's last logout (tokenVersion mismatch).
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed token"})
			return
		}

		claims, err := utils.VerifyAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		idFloat, ok := claims["id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		userID := uint(idFloat)

		var user models.User
		if err := config.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		tokenVersion, _ := claims["tokenVersion"].(float64)
		if int(tokenVersion) != user.TokenVersion {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}

		c.Set("userID", userID)
		c.Set("username", user.Username)
		if role, ok := claims["role"].(string); ok {
			c.Set("role", role)
		}
		c.Next()
	}
}
