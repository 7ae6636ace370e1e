package controllers

import (
	"github.com/Alianama/food-gamification-backend/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	push *services.PushService
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{push: push}
}

// RegisterDevice stores a device push token so the user can receive
// level-up and health-status notifications.
func (ctl *DeviceController) RegisterDevice(c *gin.Context) {
	if ctl.push == nil {
		respondBadRequest(c, "push notifications are not configured")
		return
	}

	var req services.RegisterDeviceReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Platform == "" || req.Token == "" {
		respondBadRequest(c, "platform and token are required")
		return
	}

	device, err := ctl.push.RegisterDevice(currentUserID(c), req.Platform, req.Token)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	respondOK(c, "device registered", gin.H{"id": device.ID, "platform": device.Platform})
}
