package services

import (
	"context"
	"errors"
	"time"

	"github.com/Alianama/food-gamification-backend/models"

	"gorm.io/gorm"
)

// ProgressRepository is the storage boundary of the confirmation
// workflow. Lookups return (nil, nil) when the row does not exist.
type ProgressRepository interface {
	GetFoodEntry(ctx context.Context, userID uint, id string) (*models.FoodHistory, error)

	// MarkConsumed flips the entry to consumed only if it is still
	// pending. Returns false when the entry was already consumed, so
	// two racing confirmations cannot both award XP.
	MarkConsumed(ctx context.Context, id string, xpGained int, consumedAt time.Time) (bool, error)

	GetCharacter(ctx context.Context, userID uint) (*models.Character, error)
	UpdateProgress(ctx context.Context, userID uint, xpPoint, level, xpToNext int) error
	UpdateHealth(ctx context.Context, userID uint, healthPoint int, status string) error

	ListConsumedSince(ctx context.Context, userID uint, from time.Time) ([]models.FoodHistory, error)

	// Transaction runs fn against a transactional view of the
	// repository; any error rolls every write back.
	Transaction(ctx context.Context, fn func(ProgressRepository) error) error
}

type gormProgressRepository struct{ db *gorm.DB }

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &gormProgressRepository{db: db}
}

func (r *gormProgressRepository) GetFoodEntry(ctx context.Context, userID uint, id string) (*models.FoodHistory, error) {
	var entry models.FoodHistory
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *gormProgressRepository) MarkConsumed(ctx context.Context, id string, xpGained int, consumedAt time.Time) (bool, error) {
	// Single conditional update keyed on id+is_consumed=false; the
	// affected-rows count tells us whether we won the transition.
	res := r.db.WithContext(ctx).
		Model(&models.FoodHistory{}).
		Where("id = ? AND is_consumed = ?", id, false).
		Updates(map[string]any{
			"is_consumed": true,
			"consumed_at": consumedAt,
			"xp_gained":   xpGained,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *gormProgressRepository) GetCharacter(ctx context.Context, userID uint) (*models.Character, error) {
	var ch models.Character
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&ch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *gormProgressRepository) UpdateProgress(ctx context.Context, userID uint, xpPoint, level, xpToNext int) error {
	return r.db.WithContext(ctx).
		Model(&models.Character{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"xp_point":         xpPoint,
			"level":            level,
			"xp_to_next_level": xpToNext,
		}).Error
}

func (r *gormProgressRepository) UpdateHealth(ctx context.Context, userID uint, healthPoint int, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Character{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"health_point": healthPoint,
			"status_name":  status,
		}).Error
}

func (r *gormProgressRepository) ListConsumedSince(ctx context.Context, userID uint, from time.Time) ([]models.FoodHistory, error) {
	var entries []models.FoodHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_consumed = ? AND consumed_at >= ?", userID, true, from).
		Order("consumed_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *gormProgressRepository) Transaction(ctx context.Context, fn func(ProgressRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProgressRepository{db: tx})
	})
}
