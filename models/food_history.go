package models

import "time"

// FoodHistory is one detected meal. It starts pending and can be
// confirmed exactly once; after IsConsumed flips to true the row is
// immutable.
type FoodHistory struct {
	ID                 string `gorm:"type:uuid;primaryKey"`
	UserID             uint   `gorm:"index;not null"`
	FoodName           string `gorm:"not null"`
	BrandName          string
	FoodDescription    string
	FoodType           string
	FoodURL            string
	ServingDescription string

	// Nutrition facts per serving, as returned by the classifier.
	Calories     float64
	Carbohydrate float64
	Fat          float64
	Fiber        float64
	Protein      float64
	Sodium       float64 // mg
	Sugar        float64

	IsConsumed bool       `gorm:"index;default:false"`
	ConsumedAt *time.Time `gorm:"index"`
	XPGained   *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Nutrition extracts the scored facts from the entry.
func (f *FoodHistory) Nutrition() Nutrition {
	return Nutrition{
		Calories: f.Calories,
		Protein:  f.Protein,
		Fiber:    f.Fiber,
		Sugar:    f.Sugar,
		Sodium:   f.Sodium,
		Fat:      f.Fat,
	}
}
