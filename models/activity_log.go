package models

import "time"

// ActivityLog is an audit row for admin mutations (CREATE/UPDATE/DELETE).
type ActivityLog struct {
	ID          uint   `gorm:"primaryKey"`
	Action      string `gorm:"size:16;index"`
	TableName   string `gorm:"size:64"`
	UserID      uint   `gorm:"index"`
	UserName    string
	RecordID    uint
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}
