package models

import "time"

type Notification struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	Type      string    `gorm:"size:20"` // "level_up" | "health_status"
	Message   string    `gorm:"type:text"`
	CreatedAt time.Time
}
