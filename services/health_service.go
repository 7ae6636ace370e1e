package services

import (
	"math"

	"github.com/Alianama/food-gamification-backend/models"
)

// Daily intake targets the health score is measured against.
const (
	targetDailyCalories = 2000.0
	dailyCalorieBand    = 0.1 // full credit within 1800..2200 kcal
	targetDailyProtein  = 60.0
	targetDailyFiber    = 25.0
	targetDailySugar    = 50.0
	targetDailySodium   = 2300.0
	targetDailyFat      = 70.0
	trendWindow         = 3
	trendThreshold      = 5.0
)

// DailyNutritionTotal is one calendar day's summed intake. Derived on
// demand from consumed food history, never persisted.
type DailyNutritionTotal struct {
	Date string `json:"date"` // yyyy-mm-dd, UTC
	models.Nutrition
}

type ComponentScore struct {
	Score  int     `json:"score"`
	Weight int     `json:"weight"`
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
}

type HealthBreakdown struct {
	Calories ComponentScore `json:"calories"`
	Protein  ComponentScore `json:"protein"`
	Fiber    ComponentScore `json:"fiber"`
	Sugar    ComponentScore `json:"sugar"`
	Sodium   ComponentScore `json:"sodium"`
	Fat      ComponentScore `json:"fat"`
}

type DailyHealthScore struct {
	Score     int             `json:"score"`
	Breakdown HealthBreakdown `json:"breakdown"`
	Status    string          `json:"status"`
	MaxScore  int             `json:"maxScore"`
}

// CalculateDailyHealthScore grades one day's intake on six weighted
// components summing to 100. Calories carry the largest weight and lose
// one point per 50 kcal of deviation beyond the ±10% band; the other
// components step through full/partial/zero credit.
func CalculateDailyHealthScore(day models.Nutrition) DailyHealthScore {
	b := HealthBreakdown{
		Calories: ComponentScore{Weight: 40, Target: targetDailyCalories, Actual: day.Calories},
		Protein:  ComponentScore{Weight: 20, Target: targetDailyProtein, Actual: day.Protein},
		Fiber:    ComponentScore{Weight: 10, Target: targetDailyFiber, Actual: day.Fiber},
		Sugar:    ComponentScore{Weight: 10, Target: targetDailySugar, Actual: day.Sugar},
		Sodium:   ComponentScore{Weight: 10, Target: targetDailySodium, Actual: day.Sodium},
		Fat:      ComponentScore{Weight: 10, Target: targetDailyFat, Actual: day.Fat},
	}

	lo := targetDailyCalories * (1 - dailyCalorieBand)
	hi := targetDailyCalories * (1 + dailyCalorieBand)
	if day.Calories >= lo && day.Calories <= hi {
		b.Calories.Score = 40
	} else {
		deviation := math.Max(math.Abs(day.Calories-targetDailyCalories)-targetDailyCalories*dailyCalorieBand, 0)
		b.Calories.Score = max(0, 40-int(math.Floor(deviation/50)))
	}

	switch {
	case day.Protein >= targetDailyProtein:
		b.Protein.Score = 20
	case day.Protein >= 40:
		b.Protein.Score = 10
	}

	switch {
	case day.Fiber >= targetDailyFiber:
		b.Fiber.Score = 10
	case day.Fiber >= 15:
		b.Fiber.Score = 5
	}

	// Sugar, sodium and fat: lower is better.
	switch {
	case day.Sugar <= targetDailySugar:
		b.Sugar.Score = 10
	case day.Sugar <= 80:
		b.Sugar.Score = 5
	}

	switch {
	case day.Sodium <= targetDailySodium:
		b.Sodium.Score = 10
	case day.Sodium <= 3000:
		b.Sodium.Score = 5
	}

	switch {
	case day.Fat <= targetDailyFat:
		b.Fat.Score = 10
	case day.Fat <= 100:
		b.Fat.Score = 5
	}

	total := b.Calories.Score + b.Protein.Score + b.Fiber.Score + b.Sugar.Score + b.Sodium.Score + b.Fat.Score

	return DailyHealthScore{
		Score:     total,
		Breakdown: b,
		Status:    healthStatus(total),
		MaxScore:  100,
	}
}

func healthStatus(score int) string {
	switch {
	case score >= 75:
		return "Healthy"
	case score >= 50:
		return "Neutral"
	default:
		return "Unhealthy"
	}
}

type DailyScore struct {
	Date      string          `json:"date"`
	Score     int             `json:"score"`
	Status    string          `json:"status"`
	Breakdown HealthBreakdown `json:"breakdown"`
}

type Trends struct {
	Improving  bool `json:"improving"`
	Declining  bool `json:"declining"`
	Stable     bool `json:"stable"`
	TrendScore int  `json:"trendScore"`
}

type WeeklyHealthScore struct {
	WeeklyScore int          `json:"weeklyScore"`
	DailyScores []DailyScore `json:"dailyScores"`
	Status      string       `json:"status"`
	Trends      Trends       `json:"trends"`
	ValidDays   int          `json:"validDays"`
	TotalDays   int          `json:"totalDays"`
}

// CalculateWeeklyHealthScore averages up to seven daily scores. Days
// that scored zero are excluded from the average but still appear in
// DailyScores; an empty window reports "No Data".
func CalculateWeeklyHealthScore(week []DailyNutritionTotal) WeeklyHealthScore {
	if len(week) == 0 {
		return WeeklyHealthScore{
			Status:      "No Data",
			DailyScores: []DailyScore{},
			Trends:      Trends{Stable: true},
		}
	}

	dailyScores := make([]DailyScore, 0, len(week))
	totalScore := 0
	validDays := 0

	for _, day := range week {
		ds := CalculateDailyHealthScore(day.Nutrition)
		dailyScores = append(dailyScores, DailyScore{
			Date:      day.Date,
			Score:     ds.Score,
			Status:    ds.Status,
			Breakdown: ds.Breakdown,
		})
		if ds.Score > 0 {
			totalScore += ds.Score
			validDays++
		}
	}

	weeklyScore := 0
	if validDays > 0 {
		weeklyScore = int(math.Round(float64(totalScore) / float64(validDays)))
	}

	return WeeklyHealthScore{
		WeeklyScore: weeklyScore,
		DailyScores: dailyScores,
		Status:      healthStatus(weeklyScore),
		Trends:      analyzeTrends(dailyScores),
		ValidDays:   validDays,
		TotalDays:   len(week),
	}
}

// analyzeTrends compares the mean of the last three days against the
// three before them. Fewer than six days is reported as stable; a
// difference of exactly ±threshold is still stable.
func analyzeTrends(dailyScores []DailyScore) Trends {
	if len(dailyScores) < 2*trendWindow {
		return Trends{Stable: true}
	}

	recent := dailyScores[len(dailyScores)-trendWindow:]
	previous := dailyScores[len(dailyScores)-2*trendWindow : len(dailyScores)-trendWindow]

	recentAvg := scoreAvg(recent)
	previousAvg := scoreAvg(previous)
	diff := recentAvg - previousAvg

	return Trends{
		Improving:  diff > trendThreshold,
		Declining:  diff < -trendThreshold,
		Stable:     math.Abs(diff) <= trendThreshold,
		TrendScore: int(math.Round(diff)),
	}
}

func scoreAvg(days []DailyScore) float64 {
	sum := 0
	for _, d := range days {
		sum += d.Score
	}
	return float64(sum) / float64(len(days))
}

// GetHealthRecommendations turns a weekly score and the latest daily
// breakdown into actionable guidance: one headline by tier, then one
// corrective line per component scoring below its cutoff.
func GetHealthRecommendations(score int, breakdown HealthBreakdown) []string {
	var recs []string

	switch {
	case score >= 75:
		recs = append(recs, "Excellent! Keep up your healthy eating pattern.")
	case score >= 50:
		recs = append(recs, "Good progress! A few areas could improve.")
	default:
		recs = append(recs, "Your eating pattern needs significant improvement.")
	}

	if breakdown.Calories.Score < 30 {
		recs = append(recs, "Watch your daily calorie intake. Target: 1800-2200 kcal.")
	}
	if breakdown.Protein.Score < 15 {
		recs = append(recs, "Increase protein with meat, fish, or legumes.")
	}
	if breakdown.Fiber.Score < 7 {
		recs = append(recs, "Add more vegetables and fruit for fiber.")
	}
	if breakdown.Sugar.Score < 7 {
		recs = append(recs, "Cut back on sugary foods and drinks.")
	}
	if breakdown.Sodium.Score < 7 {
		recs = append(recs, "Reduce salt and high-sodium processed foods.")
	}
	if breakdown.Fat.Score < 7 {
		recs = append(recs, "Choose healthy fats and limit fatty foods.")
	}

	return recs
}

type HealthStatusInfo struct {
	Emoji   string `json:"emoji"`
	Color   string `json:"color"`
	Message string `json:"message"`
}

// GetHealthStatusInfo maps a status name onto its display tuple. Any
// unrecognized status (including "No Data") falls through to the
// no-data tuple.
func GetHealthStatusInfo(status string) HealthStatusInfo {
	switch status {
	case "Healthy":
		return HealthStatusInfo{Emoji: "💚", Color: "#32CD32", Message: "Very healthy!"}
	case "Neutral":
		return HealthStatusInfo{Emoji: "💛", Color: "#FFD700", Message: "Doing okay"}
	case "Unhealthy":
		return HealthStatusInfo{Emoji: "❤️", Color: "#FF6B6B", Message: "Needs improvement"}
	default:
		return HealthStatusInfo{Emoji: "❓", Color: "#808080", Message: "No data yet"}
	}
}
