package controllers

import (
	"net/http"

	"github.com/Alianama/food-gamification-backend/services"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// respondError maps *services.APIError to its status and stable code;
// everything else becomes a 500 with no internal detail.
func respondError(c *gin.Context, err error) {
	if apiErr, ok := err.(*services.APIError); ok {
		c.JSON(apiErr.Status, gin.H{
			"status":  "error",
			"message": apiErr.Message,
			"code":    apiErr.Code,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": services.ErrInternal.Message,
		"code":    services.ErrInternal.Code,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
		"code":    "INVALID_INPUT",
	})
}

func currentUserID(c *gin.Context) uint {
	id, _ := c.Get("userID")
	uid, _ := id.(uint)
	return uid
}
