package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Alianama/food-gamification-backend/models"

	"gorm.io/gorm"
)

type FoodHistoryService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewFoodHistoryService(db *gorm.DB) *FoodHistoryService {
	return &FoodHistoryService{db: db, now: time.Now}
}

func (s *FoodHistoryService) WithClock(now func() time.Time) *FoodHistoryService {
	s.now = now
	return s
}

// ---------- History listing ----------

// JSON sort fields → database columns. Anything else is rejected.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"foodName":  "food_name",
	"calories":  "calories",
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type HistoryPage struct {
	FoodHistory []models.FoodHistory `json:"foodHistory"`
	Pagination  Pagination           `json:"pagination"`
	Sort        struct {
		SortBy    string `json:"sortBy"`
		SortOrder string `json:"sortOrder"`
	} `json:"sort"`
}

func (s *FoodHistoryService) List(ctx context.Context, userID uint, page, limit int, sortBy, sortOrder string) (*HistoryPage, error) {
	if page < 1 || limit < 1 || limit > 100 {
		return nil, ErrInvalidPagination
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, ErrInvalidSortField
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		return nil, ErrInvalidSortOrder
	}

	var totalCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.FoodHistory{}).
		Where("user_id = ?", userID).
		Count(&totalCount).Error; err != nil {
		return nil, err
	}

	var entries []models.FoodHistory
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(column + " " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))
	out := &HistoryPage{
		FoodHistory: entries,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  totalCount,
			Limit:       limit,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
	out.Sort.SortBy = sortBy
	out.Sort.SortOrder = sortOrder
	return out, nil
}

// ---------- Stats ----------

type NutritionTotals struct {
	TotalEntries      int     `json:"totalEntries"`
	TotalCalories     float64 `json:"totalCalories"`
	TotalCarbohydrate float64 `json:"totalCarbohydrate"`
	TotalFat          float64 `json:"totalFat"`
	TotalFiber        float64 `json:"totalFiber"`
	TotalProtein      float64 `json:"totalProtein"`
	TotalSodium       float64 `json:"totalSodium"`
	TotalSugar        float64 `json:"totalSugar"`
}

type NutritionAverages struct {
	Calories     float64 `json:"calories"`
	Carbohydrate float64 `json:"carbohydrate"`
	Fat          float64 `json:"fat"`
	Fiber        float64 `json:"fiber"`
	Protein      float64 `json:"protein"`
	Sodium       float64 `json:"sodium"`
	Sugar        float64 `json:"sugar"`
}

type FoodCount struct {
	FoodName string `json:"foodName"`
	Count    int    `json:"count"`
}

type DailyStat struct {
	Date     string   `json:"date"`
	Count    int      `json:"count"`
	Calories float64  `json:"calories"`
	Foods    []string `json:"foods"`
}

type FoodStats struct {
	Period struct {
		Days      int    `json:"days"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	} `json:"period"`
	Summary                  NutritionTotals    `json:"summary"`
	Averages                 NutritionAverages  `json:"averages"`
	NutritionRecommendations []string           `json:"nutritionRecommendations"`
	HealthRecommendations    []string           `json:"healthRecommendations"`
	Health                   struct {
		WeeklyScore int    `json:"weeklyScore"`
		Status      string `json:"status"`
	} `json:"health"`
	Character         *CharacterSnapshot `json:"character,omitempty"`
	MostConsumedFoods []FoodCount        `json:"mostConsumedFoods"`
	DailyBreakdown    []DailyStat        `json:"dailyBreakdown"`
}

// Stats aggregates a user's food history over the given period in days,
// plus the current weekly health picture. Rounding to two decimals
// happens here, at presentation, never inside the engines.
func (s *FoodHistoryService) Stats(ctx context.Context, userID uint, periodDays int) (*FoodStats, error) {
	if periodDays < 1 || periodDays > 365 {
		return nil, ErrInvalidPeriod
	}

	now := s.now()
	startDate := now.AddDate(0, 0, -periodDays)

	var entries []models.FoodHistory
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, startDate).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	out := &FoodStats{}
	out.Period.Days = periodDays
	out.Period.StartDate = startDate.UTC().Format(time.RFC3339)
	out.Period.EndDate = now.UTC().Format(time.RFC3339)

	var sum NutritionTotals
	sum.TotalEntries = len(entries)
	foodCounts := map[string]int{}
	daily := map[string]*DailyStat{}
	for _, e := range entries {
		sum.TotalCalories += e.Calories
		sum.TotalCarbohydrate += e.Carbohydrate
		sum.TotalFat += e.Fat
		sum.TotalFiber += e.Fiber
		sum.TotalProtein += e.Protein
		sum.TotalSodium += e.Sodium
		sum.TotalSugar += e.Sugar

		foodCounts[e.FoodName]++

		date := e.CreatedAt.UTC().Format("2006-01-02")
		d := daily[date]
		if d == nil {
			d = &DailyStat{Date: date}
			daily[date] = d
		}
		d.Count++
		d.Calories += e.Calories
		d.Foods = append(d.Foods, e.FoodName)
	}

	out.Summary = NutritionTotals{
		TotalEntries:      sum.TotalEntries,
		TotalCalories:     round2(sum.TotalCalories),
		TotalCarbohydrate: round2(sum.TotalCarbohydrate),
		TotalFat:          round2(sum.TotalFat),
		TotalFiber:        round2(sum.TotalFiber),
		TotalProtein:      round2(sum.TotalProtein),
		TotalSodium:       round2(sum.TotalSodium),
		TotalSugar:        round2(sum.TotalSugar),
	}

	n := len(entries)
	out.Averages = NutritionAverages{
		Calories:     avg(sum.TotalCalories, n),
		Carbohydrate: avg(sum.TotalCarbohydrate, n),
		Fat:          avg(sum.TotalFat, n),
		Fiber:        avg(sum.TotalFiber, n),
		Protein:      avg(sum.TotalProtein, n),
		Sodium:       avg(sum.TotalSodium, n),
		Sugar:        avg(sum.TotalSugar, n),
	}

	for name, count := range foodCounts {
		out.MostConsumedFoods = append(out.MostConsumedFoods, FoodCount{FoodName: name, Count: count})
	}
	sort.Slice(out.MostConsumedFoods, func(i, j int) bool {
		a, b := out.MostConsumedFoods[i], out.MostConsumedFoods[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.FoodName < b.FoodName
	})
	if len(out.MostConsumedFoods) > 10 {
		out.MostConsumedFoods = out.MostConsumedFoods[:10]
	}

	for _, d := range daily {
		d.Calories = round2(d.Calories)
		out.DailyBreakdown = append(out.DailyBreakdown, *d)
	}
	sort.Slice(out.DailyBreakdown, func(i, j int) bool {
		return out.DailyBreakdown[i].Date < out.DailyBreakdown[j].Date
	})

	var character models.Character
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&character).Error; err == nil {
		out.Character = &CharacterSnapshot{
			XPPoint:       character.XPPoint,
			Level:         character.Level,
			XPToNextLevel: character.XPToNextLevel,
			HealthPoint:   character.HealthPoint,
			StatusName:    character.StatusName,
		}
	}

	// Weekly health over the trailing 7-day window of consumed entries.
	var weeklyConsumed []models.FoodHistory
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_consumed = ? AND consumed_at >= ?", userID, true, now.AddDate(0, 0, -healthWindowDays)).
		Find(&weeklyConsumed).Error; err != nil {
		return nil, err
	}
	totals := GroupDailyTotals(weeklyConsumed)
	weekly := CalculateWeeklyHealthScore(totals)
	out.Health.WeeklyScore = weekly.WeeklyScore
	out.Health.Status = weekly.Status

	var latestBreakdown HealthBreakdown
	if len(weekly.DailyScores) > 0 {
		latestBreakdown = weekly.DailyScores[len(weekly.DailyScores)-1].Breakdown
	}
	out.HealthRecommendations = GetHealthRecommendations(weekly.WeeklyScore, latestBreakdown)

	// Per-serving recommendations are driven by today's running totals.
	today := now.UTC().Format("2006-01-02")
	var todayTotals models.Nutrition
	for _, t := range totals {
		if t.Date == today {
			todayTotals = t.Nutrition
			break
		}
	}
	out.NutritionRecommendations = GetNutritionRecommendations(todayTotals)

	return out, nil
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
