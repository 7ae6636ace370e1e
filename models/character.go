package models

import "gorm.io/gorm"

// Character carries a user's gamified progression. One row per user,
// created together with the account at level 0.
//
// Invariant kept by the leveling algorithm: 0 <= XPPoint < XPToNextLevel.
type Character struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex;not null"`
	XPPoint       int    `gorm:"default:0"`
	Level         int    `gorm:"default:0"`
	XPToNextLevel int    `gorm:"default:100"`
	HealthPoint   int    `gorm:"default:0"`  // last computed weekly health score, 0-100
	StatusName    string `gorm:"size:32"`    // Healthy | Neutral | Unhealthy | No Data
}
