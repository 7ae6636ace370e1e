package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Alianama/food-gamification-backend/models"
)

// healthWindowDays is the trailing span of consumed entries feeding the
// weekly health score.
const healthWindowDays = 7

type CharacterService struct {
	repo ProgressRepository
	now  func() time.Time
}

func NewCharacterService(repo ProgressRepository) *CharacterService {
	return &CharacterService{repo: repo, now: time.Now}
}

// WithClock overrides the wall clock, for deterministic tests.
func (s *CharacterService) WithClock(now func() time.Time) *CharacterService {
	s.now = now
	return s
}

type CharacterSnapshot struct {
	XPPoint       int    `json:"xpPoint"`
	Level         int    `json:"level"`
	XPToNextLevel int    `json:"xpToNextLevel"`
	HealthPoint   int    `json:"healthPoint"`
	StatusName    string `json:"statusName"`
}

type ConfirmResult struct {
	FoodHistoryID            string             `json:"foodHistoryId"`
	Confirmed                bool               `json:"confirmed"`
	XPGained                 int                `json:"xpGained"`
	LevelUp                  bool               `json:"levelUp"`
	NewLevel                 int                `json:"newLevel"`
	LevelsGained             int                `json:"levelsGained,omitempty"`
	LevelInfo                *LevelInfo         `json:"levelInfo,omitempty"`
	XPBreakdown              *XPBreakdown       `json:"xpBreakdown,omitempty"`
	HealthScore              int                `json:"healthScore"`
	HealthStatus             string             `json:"healthStatus"`
	HealthStatusInfo         *HealthStatusInfo  `json:"healthStatusInfo,omitempty"`
	NutritionRecommendations []string           `json:"nutritionRecommendations,omitempty"`
	HealthRecommendations    []string           `json:"healthRecommendations,omitempty"`
	Character                *CharacterSnapshot `json:"character,omitempty"`
}

// ConfirmFood drives the one-way pending→consumed transition for a food
// entry and folds its XP and health effects into the user's character.
// All writes happen in one transaction: a failure after the XP award
// rolls everything back rather than reporting success with stale state.
func (s *CharacterService) ConfirmFood(ctx context.Context, userID uint, foodHistoryID string, confirm bool) (*ConfirmResult, error) {
	if foodHistoryID == "" {
		return nil, ErrInvalidInput
	}

	entry, err := s.repo.GetFoodEntry(ctx, userID, foodHistoryID)
	if err != nil {
		log.Printf("confirm food: fetch entry failed: user=%d id=%s err=%v", userID, foodHistoryID, err)
		return nil, ErrInternal
	}
	if entry == nil {
		return nil, ErrFoodHistoryNotFound
	}
	if entry.IsConsumed {
		return nil, ErrAlreadyConsumed
	}

	if !confirm {
		// User declined the detection; nothing changes.
		log.Printf("food confirmation cancelled: user=%d id=%s", userID, foodHistoryID)
		return &ConfirmResult{
			FoodHistoryID: foodHistoryID,
			Confirmed:     false,
			HealthStatus:  "No Data",
		}, nil
	}

	now := s.now()
	nutrition := entry.Nutrition()
	xpRes := CalculateXP(nutrition)

	var (
		result     *ConfirmResult
		prevStatus string
	)
	err = s.repo.Transaction(ctx, func(r ProgressRepository) error {
		character, err := r.GetCharacter(ctx, userID)
		if err != nil {
			return err
		}
		if character == nil {
			return ErrCharacterNotFound
		}
		prevStatus = character.StatusName

		levelRes := CalculateLevelUp(character.XPPoint, xpRes.XPGained, character.Level, character.XPToNextLevel)
		if err := r.UpdateProgress(ctx, userID, levelRes.NewXP, levelRes.NewLevel, levelRes.NewXPToNext); err != nil {
			return err
		}

		ok, err := r.MarkConsumed(ctx, foodHistoryID, xpRes.XPGained, now)
		if err != nil {
			return err
		}
		if !ok {
			// Lost the race against a concurrent confirmation;
			// roll the XP update back.
			return ErrAlreadyConsumed
		}

		entries, err := r.ListConsumedSince(ctx, userID, now.AddDate(0, 0, -healthWindowDays))
		if err != nil {
			return err
		}
		weekly := CalculateWeeklyHealthScore(GroupDailyTotals(entries))

		if err := r.UpdateHealth(ctx, userID, weekly.WeeklyScore, weekly.Status); err != nil {
			return err
		}

		var latestBreakdown HealthBreakdown
		if len(weekly.DailyScores) > 0 {
			latestBreakdown = weekly.DailyScores[len(weekly.DailyScores)-1].Breakdown
		}

		levelInfo := GetLevelInfo(levelRes.NewLevel)
		statusInfo := GetHealthStatusInfo(weekly.Status)
		result = &ConfirmResult{
			FoodHistoryID:            foodHistoryID,
			Confirmed:                true,
			XPGained:                 xpRes.XPGained,
			LevelUp:                  levelRes.LevelUp,
			NewLevel:                 levelRes.NewLevel,
			LevelsGained:             levelRes.LevelsGained,
			LevelInfo:                &levelInfo,
			XPBreakdown:              &xpRes.Breakdown,
			HealthScore:              weekly.WeeklyScore,
			HealthStatus:             weekly.Status,
			HealthStatusInfo:         &statusInfo,
			NutritionRecommendations: GetNutritionRecommendations(nutrition),
			HealthRecommendations:    GetHealthRecommendations(weekly.WeeklyScore, latestBreakdown),
			Character: &CharacterSnapshot{
				XPPoint:       levelRes.NewXP,
				Level:         levelRes.NewLevel,
				XPToNextLevel: levelRes.NewXPToNext,
				HealthPoint:   weekly.WeeklyScore,
				StatusName:    weekly.Status,
			},
		}
		return nil
	})
	if err != nil {
		if apiErr, ok := err.(*APIError); ok {
			return nil, apiErr
		}
		log.Printf("confirm food: transaction failed: user=%d id=%s err=%v", userID, foodHistoryID, err)
		return nil, ErrInternal
	}

	log.Printf("food confirmed: user=%d id=%s xp=%d level=%d levelUp=%v health=%d %s",
		userID, foodHistoryID, result.XPGained, result.NewLevel, result.LevelUp,
		result.HealthScore, result.HealthStatus)

	if result.LevelUp {
		EmitNotification(userID, "level_up",
			fmt.Sprintf("Level up! You reached level %d (%s)", result.NewLevel, result.LevelInfo.LevelName))
	}
	if result.HealthStatus != prevStatus {
		EmitNotification(userID, "health_status",
			fmt.Sprintf("Your weekly health status is now %s (%d/100)", result.HealthStatus, result.HealthScore))
	}

	return result, nil
}

// GroupDailyTotals buckets consumed entries by the UTC calendar date of
// their consumedAt timestamp and sums nutrition per bucket. The result
// is ordered by date ascending so trend analysis sees days in
// chronological order.
func GroupDailyTotals(entries []models.FoodHistory) []DailyNutritionTotal {
	byDate := map[string]models.Nutrition{}
	for _, e := range entries {
		if e.ConsumedAt == nil {
			continue
		}
		date := e.ConsumedAt.UTC().Format("2006-01-02")
		byDate[date] = byDate[date].Add(e.Nutrition())
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	totals := make([]DailyNutritionTotal, 0, len(dates))
	for _, d := range dates {
		totals = append(totals, DailyNutritionTotal{Date: d, Nutrition: byDate[d]})
	}
	return totals
}
