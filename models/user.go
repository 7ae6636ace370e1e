package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string `gorm:"uniqueIndex;not null"`
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FullName       string
	RoleID         uint `gorm:"index;not null"`
	Role           Role
	TokenVersion   int `gorm:"default:0"` // bumped on logout to invalidate refresh tokens
	ProfilePicture string
	IsDeleted      bool `gorm:"default:false"`
}
