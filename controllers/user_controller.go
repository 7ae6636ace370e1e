package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Alianama/food-gamification-backend/services"

	"github.com/gin-gonic/gin"
)

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

func userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": err.Error(),
			"code":    "USER_NOT_FOUND",
		})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": err.Error(),
			"code":    "USER_EXISTS",
		})
	default:
		respondError(c, err)
	}
}

func ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := services.ListUsers(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "users fetched", gin.H{
		"users": users,
		"total": total,
		"page":  page,
	})
}

func GetUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	user, err := services.GetUserByID(id)
	if err != nil {
		userError(c, err)
		return
	}
	respondOK(c, "user fetched", user)
}

func CreateUser(c *gin.Context) {
	var req services.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username, fullName, email and password are required")
		return
	}

	user, err := services.CreateUser(req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			userError(c, err)
			return
		}
		respondBadRequest(c, err.Error())
		return
	}

	services.LogAction("CREATE", "users", currentUserID(c), c.GetString("username"), user.ID, "created user "+user.Username)
	respondCreated(c, "user created", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"fullName": user.FullName,
		"email":    user.Email,
		"role":     user.Role.Name,
	})
}

func UpdateUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := services.UpdateUser(id, req)
	if err != nil {
		userError(c, err)
		return
	}

	services.LogAction("UPDATE", "users", currentUserID(c), c.GetString("username"), id, "updated user "+user.Username)
	respondOK(c, "user updated", user)
}

func ResetUserPassword(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := services.ResetUserPassword(id); err != nil {
		userError(c, err)
		return
	}

	services.LogAction("RESET_PASSWORD", "users", currentUserID(c), c.GetString("username"), id, "reset user password")
	respondOK(c, "temporary password sent by email", nil)
}

func DeleteUser(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteUser(id); err != nil {
		userError(c, err)
		return
	}

	services.LogAction("DELETE", "users", currentUserID(c), c.GetString("username"), id, "soft-deleted user")
	respondOK(c, "user deleted", nil)
}

type profilePictureRequest struct {
	Image string `json:"image" binding:"required"`
}

func UploadProfilePicture(c *gin.Context) {
	var req profilePictureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "image (base64 data URI) is required")
		return
	}

	userID := currentUserID(c)
	url, err := services.UpdateProfilePicture(userID, req.Image)
	if err != nil {
		userError(c, err)
		return
	}
	respondOK(c, "profile picture updated", gin.H{"profilePicture": url})
}

func ListActivityLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := services.ListActivityLogs(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "activity logs fetched", logs)
}
