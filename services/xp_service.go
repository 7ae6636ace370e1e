package services

import (
	"math"

	"github.com/Alianama/food-gamification-backend/models"
)

// Per-serving calorie target and tolerance for the base XP award.
const (
	targetServingCalories = 500.0
	calorieTolerance      = 0.15 // acceptable band: 425..575 kcal
	maxXPPerFood          = 15
)

type XPBreakdown struct {
	BaseCalorieXP int `json:"baseCalorieXP"`
	ProteinBonus  int `json:"proteinBonus"`
	FiberBonus    int `json:"fiberBonus"`
	SugarPenalty  int `json:"sugarPenalty"`
	SodiumPenalty int `json:"sodiumPenalty"`
	Total         int `json:"total"`
}

type XPResult struct {
	XPGained  int              `json:"xpGained"`
	Breakdown XPBreakdown      `json:"breakdown"`
	Nutrition models.Nutrition `json:"nutrition"`
}

// CalculateXP scores one serving. Deterministic, no I/O.
//
// Base XP comes from calories: 10 inside the tolerance band, minus one
// point per 25 kcal of deviation beyond it. Protein and fiber add
// bonuses, sugar and sodium subtract. The total is clamped to
// [0, maxXPPerFood].
func CalculateXP(n models.Nutrition) XPResult {
	lo := targetServingCalories * (1 - calorieTolerance)
	hi := targetServingCalories * (1 + calorieTolerance)

	var b XPBreakdown

	if n.Calories >= lo && n.Calories <= hi {
		b.BaseCalorieXP = 10
	} else {
		deviation := math.Max(math.Abs(n.Calories-targetServingCalories)-targetServingCalories*calorieTolerance, 0)
		penalty := int(math.Floor(deviation / 25))
		b.BaseCalorieXP = max(0, 10-penalty)
	}

	switch {
	case n.Protein >= 30:
		b.ProteinBonus = 2
	case n.Protein >= 20:
		b.ProteinBonus = 1
	}

	if n.Fiber >= 5 {
		b.FiberBonus = 1
	}

	switch {
	case n.Sugar > 30:
		b.SugarPenalty = -2
	case n.Sugar > 20:
		b.SugarPenalty = -1
	}

	switch {
	case n.Sodium > 1000:
		b.SodiumPenalty = -2
	case n.Sodium > 700:
		b.SodiumPenalty = -1
	}

	total := b.BaseCalorieXP + b.ProteinBonus + b.FiberBonus + b.SugarPenalty + b.SodiumPenalty
	b.Total = min(maxXPPerFood, max(0, total))

	return XPResult{XPGained: b.Total, Breakdown: b, Nutrition: n}
}

type LevelUpResult struct {
	NewLevel     int  `json:"newLevel"`
	NewXP        int  `json:"newXP"`
	NewXPToNext  int  `json:"newXPToNext"`
	LevelUp      bool `json:"levelUp"`
	LevelsGained int  `json:"levelsGained"`
}

// CalculateLevelUp folds an XP award into the current progression.
// Supports multi-level jumps: the loop consumes full levels until the
// remaining XP is below the (growing) threshold, so the returned state
// always satisfies 0 <= NewXP < NewXPToNext.
func CalculateLevelUp(currentXP, xpToAdd, currentLevel, currentXPToNext int) LevelUpResult {
	newXP := currentXP + xpToAdd
	newLevel := currentLevel
	newXPToNext := currentXPToNext

	for newXP >= newXPToNext {
		newXP -= newXPToNext
		newLevel++
		// Level-cost curve: base 100 plus 20 per level.
		newXPToNext = 100 + newLevel*20
	}

	return LevelUpResult{
		NewLevel:     newLevel,
		NewXP:        newXP,
		NewXPToNext:  newXPToNext,
		LevelUp:      newLevel > currentLevel,
		LevelsGained: newLevel - currentLevel,
	}
}

type LevelInfo struct {
	LevelName   string `json:"levelName"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// GetLevelInfo maps a level onto its display tier. Thresholds are
// inclusive lower bounds, checked highest-first.
func GetLevelInfo(level int) LevelInfo {
	switch {
	case level >= 50:
		return LevelInfo{"Master Chef", "A true nutrition expert!", "#FFD700"}
	case level >= 30:
		return LevelInfo{"Expert Nutritionist", "Seasoned in healthy eating", "#C0C0C0"}
	case level >= 20:
		return LevelInfo{"Health Enthusiast", "Loves a healthy lifestyle", "#CD7F32"}
	case level >= 10:
		return LevelInfo{"Healthy Eater", "Eats well consistently", "#32CD32"}
	case level >= 5:
		return LevelInfo{"Health Learner", "Learning to live healthy", "#87CEEB"}
	default:
		return LevelInfo{"Health Beginner", "Starting the healthy journey", "#DDA0DD"}
	}
}

// GetNutritionRecommendations derives per-serving guidance from the
// facts that fed the XP award.
func GetNutritionRecommendations(n models.Nutrition) []string {
	var recs []string

	if n.Calories < 200 {
		recs = append(recs, "This food is low in calories. Consider pairing it with something else to meet your daily needs.")
	} else if n.Calories > 800 {
		recs = append(recs, "This food is high in calories. Balance it with physical activity.")
	}

	if n.Protein < 10 {
		recs = append(recs, "Increase protein intake by adding meat, fish, or legumes.")
	} else if n.Protein >= 30 {
		recs = append(recs, "Excellent! High protein supports muscle growth and cell repair.")
	}

	if n.Fiber < 3 {
		recs = append(recs, "Add more vegetables and fruit to raise your fiber intake.")
	}

	if n.Sugar > 25 {
		recs = append(recs, "Cut back on sweet foods and pick healthier alternatives.")
	}

	if n.Sodium > 600 {
		recs = append(recs, "Reduce salt and choose low-sodium foods.")
	}

	return recs
}
