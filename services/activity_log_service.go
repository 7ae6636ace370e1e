package services

import (
	"fmt"
	"log"
	"time"

	"github.com/Alianama/food-gamification-backend/config"
	"github.com/Alianama/food-gamification-backend/models"
)

// LogAction writes an audit row for an admin mutation. Logging must
// never fail the operation it describes, so errors only hit the
// process log.
func LogAction(action, table string, userID uint, userName string, recordID uint, description string) {
	if description == "" {
		switch action {
		case "CREATE":
			description = fmt.Sprintf("User %s created %s (ID: %d)", userName, table, recordID)
		case "UPDATE":
			description = fmt.Sprintf("User %s updated %s (ID: %d)", userName, table, recordID)
		case "DELETE":
			description = fmt.Sprintf("User %s deleted %s (ID: %d)", userName, table, recordID)
		}
	}

	entry := models.ActivityLog{
		Action:      action,
		TableName:   table,
		UserID:      userID,
		UserName:    userName,
		RecordID:    recordID,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		log.Printf("activity log write failed: %v", err)
	}
}

func ListActivityLogs(limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var logs []models.ActivityLog
	err := config.DB.
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
