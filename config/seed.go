package config

import (
	"errors"

	"github.com/Alianama/food-gamification-backend/models"

	"gorm.io/gorm"
)

// Role and permission names the middleware depends on.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"

	PermManageUsers = "MANAGE_USERS"
	PermManageRoles = "MANAGE_ROLES"
	PermViewProfile = "VIEW_PROFILE"
)

// SeedRoles creates the fixed permission/role matrix if it does not
// exist yet. Idempotent: existing rows are left untouched.
func SeedRoles(db *gorm.DB) error {
	perms := map[string]string{
		PermManageUsers: "Can manage user accounts",
		PermManageRoles: "Can manage roles",
		PermViewProfile: "Can view own profile",
	}

	created := map[string]*models.Permission{}
	for name, desc := range perms {
		var p models.Permission
		err := db.Where("name = ?", name).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p = models.Permission{Name: name, Description: desc}
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		created[name] = &p
	}

	roles := []struct {
		name, desc string
		perms      []string
	}{
		{RoleSuperAdmin, "Super administrator with full access", []string{PermManageUsers, PermManageRoles, PermViewProfile}},
		{RoleAdmin, "Administrator with limited access", []string{PermManageUsers, PermViewProfile}},
		{RoleUser, "Regular user", []string{PermViewProfile}},
	}

	for _, r := range roles {
		var role models.Role
		err := db.Where("name = ?", r.name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			role = models.Role{Name: r.name, Description: r.desc}
			for _, pn := range r.perms {
				role.Permissions = append(role.Permissions, *created[pn])
			}
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	return nil
}
