package models

import "gorm.io/gorm"

type Role struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"` // SUPER_ADMIN | ADMIN | USER
	Description string
	Permissions []Permission `gorm:"many2many:role_permissions"`
}

type Permission struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null"` // e.g. MANAGE_USERS
	Description string
}
