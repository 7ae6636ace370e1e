package middlewares

import (
	"net/http"

	"github.com/Alianama/food-gamification-backend/config"
	"github.com/Alianama/food-gamification-backend/models"

	"github.com/gin-gonic/gin"
)

// RequirePermission gates a route on a named permission of the caller's
// role. Runs after AuthMiddleware.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		var user models.User
		err := config.DB.
			Preload("Role.Permissions").
			First(&user, userID.(uint)).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		for _, p := range user.Role.Permissions {
			if p.Name == permission {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
