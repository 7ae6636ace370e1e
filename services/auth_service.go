package services

import (
	"errors"

	"github.com/Alianama/food-gamification-backend/config"
	"github.com/Alianama/food-gamification-backend/models"
	"github.com/Alianama/food-gamification-backend/utils"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type LoginResult struct {
	ID           uint         `json:"id"`
	Username     string       `json:"username"`
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"`
	Role         *models.Role `json:"role"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func Login(username, password string) (*LoginResult, error) {
	var user models.User
	err := config.DB.
		Preload("Role.Permissions").
		Where("username = ? AND is_deleted = ?", username, false).
		First(&user).Error
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := utils.GenerateTokens(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		ID:           user.ID,
		Username:     user.Username,
		FullName:     user.FullName,
		Email:        user.Email,
		Role:         &user.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// RefreshAccessToken validates a refresh token and mints a new access
// token. The tokenVersion claim must still match the user row, so a
// logout kills all previously issued refresh tokens.
func RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := utils.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return "", ErrInvalidToken
	}
	version, _ := claims["tokenVersion"].(float64)

	var user models.User
	if err := config.DB.Preload("Role").First(&user, uint(id)).Error; err != nil {
		return "", ErrInvalidToken
	}
	if user.IsDeleted || user.TokenVersion != int(version) {
		return "", ErrInvalidToken
	}

	return utils.GenerateAccessToken(&user)
}

// Logout invalidates every outstanding refresh token by bumping the
// user's tokenVersion.
func Logout(userID uint) error {
	return config.DB.
		Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
}

func ChangePassword(userID uint, oldPassword, newPassword string) error {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return err
	}

	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return config.DB.Model(&user).Update("password", hashed).Error
}

type ProfileResult struct {
	ID        uint               `json:"id"`
	Username  string             `json:"username"`
	FullName  string             `json:"fullName"`
	Email     string             `json:"email"`
	Role      *models.Role       `json:"role"`
	Character *CharacterSnapshot `json:"character,omitempty"`
}

func GetProfile(userID uint) (*ProfileResult, error) {
	var user models.User
	err := config.DB.
		Preload("Role.Permissions").
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error
	if err != nil {
		return nil, errors.New("user not found")
	}

	out := &ProfileResult{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     &user.Role,
	}

	var ch models.Character
	if err := config.DB.Where("user_id = ?", userID).First(&ch).Error; err == nil {
		out.Character = &CharacterSnapshot{
			XPPoint:       ch.XPPoint,
			Level:         ch.Level,
			XPToNextLevel: ch.XPToNextLevel,
			HealthPoint:   ch.HealthPoint,
			StatusName:    ch.StatusName,
		}
	}

	return out, nil
}
