package services

import (
	"fmt"
	"time"

	"github.com/Alianama/food-gamification-backend/models"

	"gorm.io/gorm"
)

type notifierDeps struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

var _notifier notifierDeps

// InitNotifier wires the fan-out targets once at startup. Until then
// EmitNotification is a no-op, which keeps the engines and workflow
// testable without a hub or SNS.
func InitNotifier(db *gorm.DB, hub *RealtimeHub, push *PushService) {
	_notifier = notifierDeps{db: db, hub: hub, push: push}
}

// EmitNotification persists a progress notification and pushes it to
// every live channel the user has. Safe to call anywhere.
func EmitNotification(userID uint, typ, message string) {
	if _notifier.db == nil {
		return
	}
	n := &models.Notification{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _notifier.db.Create(n).Error

	if _notifier.hub != nil {
		_notifier.hub.Broadcast(userID, map[string]any{
			"kind":         "notification.created",
			"notification": n,
		})
	}
	if _notifier.push != nil {
		title := "NutriQuest"
		if typ == "level_up" {
			title = "Level Up!"
		}
		_notifier.push.PushToUser(userID, title, message, map[string]string{
			"type": typ, "notificationId": fmt.Sprintf("%d", n.ID),
		})
	}
}
