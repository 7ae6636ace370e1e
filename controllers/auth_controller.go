package controllers

import (
	"errors"
	"net/http"

	"github.com/Alianama/food-gamification-backend/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "username and password are required")
		return
	}

	result, err := services.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": err.Error(),
				"code":    "INVALID_CREDENTIALS",
			})
			return
		}
		respondError(c, err)
		return
	}

	services.LogAction("LOGIN", "users", result.ID, result.Username, result.ID, "user logged in")
	respondOK(c, "login successful", result)
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "refreshToken is required")
		return
	}

	access, err := services.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": services.ErrInvalidToken.Error(),
			"code":    "INVALID_TOKEN",
		})
		return
	}
	respondOK(c, "token refreshed", gin.H{"accessToken": access})
}

func Logout(c *gin.Context) {
	userID := currentUserID(c)
	if err := services.Logout(userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "logged out", nil)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "oldPassword and newPassword (min 6 chars) are required")
		return
	}

	userID := currentUserID(c)
	if err := services.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			respondBadRequest(c, err.Error())
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, "password changed", nil)
}

func Profile(c *gin.Context) {
	userID := currentUserID(c)
	profile, err := services.GetProfile(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "user not found",
			"code":    "USER_NOT_FOUND",
		})
		return
	}
	respondOK(c, "profile fetched", profile)
}
