package controllers

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Alianama/food-gamification-backend/services"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type CharacterController struct {
	detection *services.DetectionService
	character *services.CharacterService
	history   *services.FoodHistoryService
}

func NewCharacterController(detection *services.DetectionService, character *services.CharacterService, history *services.FoodHistoryService) *CharacterController {
	return &CharacterController{
		detection: detection,
		character: character,
		history:   history,
	}
}

// DetectFood accepts a multipart food image, runs it through the
// classifier and stores an unconfirmed history entry.
func (ctl *CharacterController) DetectFood(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, services.ErrNoFileUploaded)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		respondError(c, services.ErrInvalidFileType)
		return
	}
	if file.Size > maxImageSize {
		respondError(c, services.ErrFileTooLarge)
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, services.ErrInternal)
		return
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		respondError(c, services.ErrInternal)
		return
	}

	contentType := file.Header.Get("Content-Type")
	result, err := ctl.detection.DetectFood(c.Request.Context(), currentUserID(c), image, file.Filename, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "food detected", result)
}

type confirmRequest struct {
	FoodHistoryID string `json:"foodHistoryId"`
	Confirm       *bool  `json:"confirm"`
}

// ConfirmFood applies or cancels a pending detection. Confirming awards
// XP, levels the character and recomputes its weekly health score.
func (ctl *CharacterController) ConfirmFood(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.FoodHistoryID == "" || req.Confirm == nil {
		respondError(c, services.ErrInvalidInput)
		return
	}

	result, err := ctl.character.ConfirmFood(c.Request.Context(), currentUserID(c), req.FoodHistoryID, *req.Confirm)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "food confirmed"
	if !result.Confirmed {
		message = "food entry cancelled"
	}
	respondOK(c, message, result)
}

func (ctl *CharacterController) FoodHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sortBy := c.DefaultQuery("sortBy", "createdAt")
	sortOrder := c.DefaultQuery("sortOrder", "desc")

	result, err := ctl.history.List(c.Request.Context(), currentUserID(c), page, limit, sortBy, sortOrder)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "food history fetched", result)
}

func (ctl *CharacterController) FoodStats(c *gin.Context) {
	period, err := strconv.Atoi(c.DefaultQuery("period", "7"))
	if err != nil {
		respondError(c, services.ErrInvalidPeriod)
		return
	}

	result, err := ctl.history.Stats(c.Request.Context(), currentUserID(c), period)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "food statistics fetched", result)
}
