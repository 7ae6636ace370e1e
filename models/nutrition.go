package models

// Nutrition is an immutable snapshot of the facts we score against.
// All quantities are non-negative; grams except Calories (kcal) and
// Sodium (mg). Absent facts stay at their zero value.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
	Fat      float64 `json:"fat"`
}

// Add returns the element-wise sum of two nutrition snapshots.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Fiber:    n.Fiber + o.Fiber,
		Sugar:    n.Sugar + o.Sugar,
		Sodium:   n.Sodium + o.Sodium,
		Fat:      n.Fat + o.Fat,
	}
}
