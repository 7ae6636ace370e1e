package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Alianama/food-gamification-backend/config"
	"github.com/Alianama/food-gamification-backend/models"
	"github.com/Alianama/food-gamification-backend/utils"

	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already in use")
)

type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (in *CreateUserInput) validate() error {
	if !emailPattern.MatchString(in.Email) {
		return errors.New("invalid email format")
	}
	if len(in.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

// CreateUser registers an account with the default USER role and its
// level-0 character, in one transaction so a user can never exist
// without a character.
func CreateUser(in CreateUserInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var existing models.User
	err := config.DB.
		Where("username = ? OR email = ?", in.Username, in.Email).
		First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var role models.Role
	if err := config.DB.Where("name = ?", config.RoleUser).First(&role).Error; err != nil {
		return nil, fmt.Errorf("default role missing: %w", err)
	}

	user := models.User{
		Username: in.Username,
		FullName: in.FullName,
		Email:    in.Email,
		Password: hashed,
		RoleID:   role.ID,
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		character := models.Character{
			UserID:        user.ID,
			XPPoint:       0,
			Level:         0,
			XPToNextLevel: 100,
			HealthPoint:   0,
			StatusName:    "No Data",
		}
		return tx.Create(&character).Error
	})
	if err != nil {
		return nil, err
	}

	user.Role = role
	return &user, nil
}

type UserSummary struct {
	ID        uint         `json:"id"`
	Username  string       `json:"username"`
	FullName  string       `json:"fullName"`
	Email     string       `json:"email"`
	Role      *models.Role `json:"role"`
	CreatedAt string       `json:"createdAt"`
}

func summarize(u *models.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      &u.Role,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func ListUsers(page, limit int) ([]UserSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	base := config.DB.Model(&models.User{}).Where("is_deleted = ?", false)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := config.DB.
		Preload("Role").
		Where("is_deleted = ?", false).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserSummary, 0, len(users))
	for i := range users {
		out = append(out, summarize(&users[i]))
	}
	return out, total, nil
}

func GetUserByID(id uint) (*UserSummary, error) {
	var user models.User
	err := config.DB.
		Preload("Role").
		Where("id = ? AND is_deleted = ?", id, false).
		First(&user).Error
	if err != nil {
		return nil, ErrUserNotFound
	}
	s := summarize(&user)
	return &s, nil
}

type UpdateUserInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	RoleID   uint   `json:"roleId"`
}

func UpdateUser(id uint, in UpdateUserInput) (*UserSummary, error) {
	var user models.User
	if err := config.DB.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.Email != "" {
		if !emailPattern.MatchString(in.Email) {
			return nil, errors.New("invalid email format")
		}
		user.Email = in.Email
	}
	if in.RoleID != 0 {
		var role models.Role
		if err := config.DB.First(&role, in.RoleID).Error; err != nil {
			return nil, errors.New("role not found")
		}
		user.RoleID = role.ID
	}

	if err := config.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	if err := config.DB.Preload("Role").First(&user, user.ID).Error; err != nil {
		return nil, err
	}
	s := summarize(&user)
	return &s, nil
}

// ResetUserPassword sets a fresh random password, bumps tokenVersion to
// force re-login, and emails the temporary password to the user.
func ResetUserPassword(id uint) error {
	var user models.User
	if err := config.DB.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	tempPassword := utils.GenerateRandomPassword(10)
	hashed, err := utils.HashPassword(tempPassword)
	if err != nil {
		return err
	}

	err = config.DB.Model(&user).Updates(map[string]any{
		"password":      hashed,
		"token_version": gorm.Expr("token_version + 1"),
	}).Error
	if err != nil {
		return err
	}

	return utils.SendPasswordResetEmail(user.Email, tempPassword)
}

// DeleteUser soft-deletes; history and character rows stay behind for
// audit.
func DeleteUser(id uint) error {
	var user models.User
	if err := config.DB.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return ErrUserNotFound
	}
	return config.DB.Model(&user).Updates(map[string]any{
		"is_deleted":    true,
		"token_version": gorm.Expr("token_version + 1"),
	}).Error
}

// UpdateProfilePicture uploads the image to S3 and stores the public
// URL on the user.
func UpdateProfilePicture(userID uint, base64Image string) (string, error) {
	var user models.User
	if err := config.DB.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return "", ErrUserNotFound
	}

	url, err := utils.UploadBase64ImageToS3(base64Image, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	if err := config.DB.Model(&user).Update("profile_picture", url).Error; err != nil {
		return "", err
	}
	return url, nil
}
