package services

import (
	"testing"

	"github.com/Alianama/food-gamification-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateXPBaseCalorieBand(t *testing.T) {
	tests := []struct {
		name     string
		calories float64
		wantBase int
	}{
		{"target exactly", 500, 10},
		{"lower band edge", 425, 10},
		{"upper band edge", 575, 10},
		{"just under band", 424, 10}, // deviation 1, floor(1/25) = 0
		{"50 over band", 625, 8},
		{"zero calories", 0, 0},
		{"extreme calories", 5000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateXP(models.Nutrition{Calories: tt.calories})
			assert.Equal(t, tt.wantBase, res.Breakdown.BaseCalorieXP)
		})
	}
}

func TestCalculateXPBonusesAndPenalties(t *testing.T) {
	tests := []struct {
		name string
		n    models.Nutrition
		want XPBreakdown
	}{
		{
			name: "high protein and fiber",
			n:    models.Nutrition{Calories: 500, Protein: 30, Fiber: 5},
			want: XPBreakdown{BaseCalorieXP: 10, ProteinBonus: 2, FiberBonus: 1, Total: 13},
		},
		{
			name: "moderate protein",
			n:    models.Nutrition{Calories: 500, Protein: 20},
			want: XPBreakdown{BaseCalorieXP: 10, ProteinBonus: 1, Total: 11},
		},
		{
			name: "protein just under tier",
			n:    models.Nutrition{Calories: 500, Protein: 19.9},
			want: XPBreakdown{BaseCalorieXP: 10, Total: 10},
		},
		{
			name: "sugar tiers",
			n:    models.Nutrition{Calories: 500, Sugar: 30.5},
			want: XPBreakdown{BaseCalorieXP: 10, SugarPenalty: -2, Total: 8},
		},
		{
			name: "sugar boundary is not penalized twice",
			n:    models.Nutrition{Calories: 500, Sugar: 30},
			want: XPBreakdown{BaseCalorieXP: 10, SugarPenalty: -1, Total: 9},
		},
		{
			name: "sodium tiers",
			n:    models.Nutrition{Calories: 500, Sodium: 1001},
			want: XPBreakdown{BaseCalorieXP: 10, SodiumPenalty: -2, Total: 8},
		},
		{
			name: "penalties floor at zero",
			n:    models.Nutrition{Calories: 2000, Sugar: 100, Sodium: 3000},
			want: XPBreakdown{BaseCalorieXP: 0, SugarPenalty: -2, SodiumPenalty: -2, Total: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateXP(tt.n)
			assert.Equal(t, tt.want, res.Breakdown)
			assert.Equal(t, tt.want.Total, res.XPGained)
		})
	}
}

func TestCalculateXPClampedToMax(t *testing.T) {
	// 10 base + 2 protein + 1 fiber = 13 is the natural maximum, so the
	// cap can only bind if the formula changes; assert the invariant
	// holds over a sweep anyway.
	for cal := 0.0; cal <= 3000; cal += 50 {
		res := CalculateXP(models.Nutrition{Calories: cal, Protein: 50, Fiber: 10})
		assert.GreaterOrEqual(t, res.XPGained, 0)
		assert.LessOrEqual(t, res.XPGained, maxXPPerFood)
	}
}

func TestCalculateLevelUp(t *testing.T) {
	tests := []struct {
		name                   string
		xp, add, level, toNext int
		want                   LevelUpResult
	}{
		{
			name: "no level change",
			xp:   10, add: 5, level: 0, toNext: 100,
			want: LevelUpResult{NewLevel: 0, NewXP: 15, NewXPToNext: 100},
		},
		{
			name: "single level",
			xp:   95, add: 10, level: 0, toNext: 100,
			want: LevelUpResult{NewLevel: 1, NewXP: 5, NewXPToNext: 120, LevelUp: true, LevelsGained: 1},
		},
		{
			name: "multi level jump",
			xp:   0, add: 250, level: 0, toNext: 100,
			want: LevelUpResult{NewLevel: 2, NewXP: 30, NewXPToNext: 140, LevelUp: true, LevelsGained: 2},
		},
		{
			name: "exact threshold rolls over to zero",
			xp:   90, add: 10, level: 0, toNext: 100,
			want: LevelUpResult{NewLevel: 1, NewXP: 0, NewXPToNext: 120, LevelUp: true, LevelsGained: 1},
		},
		{
			name: "zero award leaves state unchanged",
			xp:   42, add: 0, level: 3, toNext: 160,
			want: LevelUpResult{NewLevel: 3, NewXP: 42, NewXPToNext: 160},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateLevelUp(tt.xp, tt.add, tt.level, tt.toNext)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.NewXP, 0)
			assert.Less(t, got.NewXP, got.NewXPToNext)
		})
	}
}

func TestGetLevelInfoTiers(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Health Beginner"},
		{4, "Health Beginner"},
		{5, "Health Learner"},
		{10, "Healthy Eater"},
		{20, "Health Enthusiast"},
		{30, "Expert Nutritionist"},
		{50, "Master Chef"},
		{99, "Master Chef"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetLevelInfo(tt.level).LevelName, "level %d", tt.level)
	}
}

func TestGetNutritionRecommendations(t *testing.T) {
	recs := GetNutritionRecommendations(models.Nutrition{
		Calories: 900, Protein: 5, Fiber: 1, Sugar: 30, Sodium: 700,
	})
	assert.Len(t, recs, 5)

	balanced := GetNutritionRecommendations(models.Nutrition{
		Calories: 500, Protein: 20, Fiber: 5, Sugar: 10, Sodium: 300,
	})
	assert.Empty(t, balanced)
}
