package services

import (
	"testing"

	"github.com/Alianama/food-gamification-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onTargetDay() models.Nutrition {
	return models.Nutrition{
		Calories: 2000, Protein: 60, Fiber: 25, Sugar: 40, Sodium: 2000, Fat: 60,
	}
}

func TestCalculateDailyHealthScorePerfectDay(t *testing.T) {
	got := CalculateDailyHealthScore(onTargetDay())
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "Healthy", got.Status)
	assert.Equal(t, 100, got.MaxScore)
	assert.Equal(t, 40, got.Breakdown.Calories.Score)
	assert.Equal(t, 20, got.Breakdown.Protein.Score)
}

func TestCalculateDailyHealthScoreCalorieBand(t *testing.T) {
	tests := []struct {
		name     string
		calories float64
		want     int
	}{
		{"lower band edge", 1800, 40},
		{"upper band edge", 2200, 40},
		{"100 kcal past band", 2300, 38},
		{"far over", 4500, 0},
		{"zero intake", 0, 4}, // deviation 1800, floor(1800/50) = 36
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDailyHealthScore(models.Nutrition{Calories: tt.calories})
			assert.Equal(t, tt.want, got.Breakdown.Calories.Score)
		})
	}
}

func TestCalculateDailyHealthScorePartialCredit(t *testing.T) {
	day := models.Nutrition{
		Calories: 2000,
		Protein:  45,   // partial: 40 <= p < 60
		Fiber:    16,   // partial: 15 <= f < 25
		Sugar:    70,   // partial: 50 < s <= 80
		Sodium:   2800, // partial: 2300 < s <= 3000
		Fat:      90,   // partial: 70 < f <= 100
	}
	got := CalculateDailyHealthScore(day)
	assert.Equal(t, 40+10+5+5+5+5, got.Score)
	assert.Equal(t, "Neutral", got.Status)
}

func TestHealthStatusBoundaries(t *testing.T) {
	assert.Equal(t, "Healthy", healthStatus(75))
	assert.Equal(t, "Neutral", healthStatus(74))
	assert.Equal(t, "Neutral", healthStatus(50))
	assert.Equal(t, "Unhealthy", healthStatus(49))
}

func TestCalculateWeeklyHealthScoreEmptyWindow(t *testing.T) {
	got := CalculateWeeklyHealthScore(nil)
	assert.Equal(t, 0, got.WeeklyScore)
	assert.Equal(t, "No Data", got.Status)
	assert.Empty(t, got.DailyScores)
	assert.True(t, got.Trends.Stable)
	assert.Zero(t, got.ValidDays)
}

func TestCalculateWeeklyHealthScoreSkipsZeroDays(t *testing.T) {
	week := []DailyNutritionTotal{
		{Date: "2026-08-24", Nutrition: onTargetDay()},
		{Date: "2026-08-25", Nutrition: models.Nutrition{Calories: 4500}}, // scores 0
		{Date: "2026-08-26", Nutrition: onTargetDay()},
	}
	got := CalculateWeeklyHealthScore(week)
	assert.Equal(t, 100, got.WeeklyScore)
	assert.Equal(t, 2, got.ValidDays)
	assert.Equal(t, 3, got.TotalDays)
	assert.Len(t, got.DailyScores, 3)
}

func sameScoreDays(dates []string, n models.Nutrition) []DailyNutritionTotal {
	out := make([]DailyNutritionTotal, 0, len(dates))
	for _, d := range dates {
		out = append(out, DailyNutritionTotal{Date: d, Nutrition: n})
	}
	return out
}

func TestAnalyzeTrends(t *testing.T) {
	// Scores 40 for the first three days, 90 for the last three.
	lowDay := models.Nutrition{Calories: 2000, Sugar: 200, Sodium: 5000, Fat: 200}
	low := CalculateDailyHealthScore(lowDay)
	require.Equal(t, 40, low.Score)

	goodDay := models.Nutrition{Calories: 2000, Protein: 60, Fiber: 25, Sugar: 40, Sodium: 2000, Fat: 90}
	good := CalculateDailyHealthScore(goodDay)
	require.Equal(t, 95, good.Score)

	week := append(
		sameScoreDays([]string{"2026-08-24", "2026-08-25", "2026-08-26"}, lowDay),
		sameScoreDays([]string{"2026-08-27", "2026-08-28", "2026-08-29"}, goodDay)...,
	)

	got := CalculateWeeklyHealthScore(week)
	assert.True(t, got.Trends.Improving)
	assert.False(t, got.Trends.Declining)
	assert.False(t, got.Trends.Stable)
	assert.Equal(t, 55, got.Trends.TrendScore)
}

func TestAnalyzeTrendsStableInclusive(t *testing.T) {
	// Difference of exactly the threshold counts as stable.
	scores := []DailyScore{
		{Score: 50}, {Score: 50}, {Score: 50},
		{Score: 55}, {Score: 55}, {Score: 55},
	}
	got := analyzeTrends(scores)
	assert.True(t, got.Stable)
	assert.False(t, got.Improving)
	assert.Equal(t, 5, got.TrendScore)
}

func TestAnalyzeTrendsShortWindow(t *testing.T) {
	scores := []DailyScore{{Score: 10}, {Score: 90}, {Score: 90}, {Score: 90}, {Score: 90}}
	got := analyzeTrends(scores)
	assert.True(t, got.Stable)
	assert.Zero(t, got.TrendScore)
}

func TestGetHealthRecommendations(t *testing.T) {
	perfect := CalculateDailyHealthScore(onTargetDay())
	recs := GetHealthRecommendations(perfect.Score, perfect.Breakdown)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Excellent")

	bad := CalculateDailyHealthScore(models.Nutrition{Calories: 5000, Sugar: 200, Sodium: 5000, Fat: 300})
	recs = GetHealthRecommendations(bad.Score, bad.Breakdown)
	// Headline plus one line per failing component.
	assert.Len(t, recs, 7)
}

func TestGetHealthStatusInfoFallsBackToNoData(t *testing.T) {
	assert.Equal(t, "💚", GetHealthStatusInfo("Healthy").Emoji)
	noData := GetHealthStatusInfo("No Data")
	assert.Equal(t, "❓", noData.Emoji)
	assert.Equal(t, noData, GetHealthStatusInfo("whatever"))
}
