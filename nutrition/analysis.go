// Package nutrition holds the food analysis shapes returned by the model
// and the pure serving-size math applied to them.
package nutrition

// Confidence tags carried on detected items. UserAdded marks items the user
// typed in themselves.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
	ConfidenceUser   = "user_added"
)

// FoodItem is one detected or user-added ingredient. After normalization the
// macro fields hold per-unit-serving values and ServingMultiplier carries the
// detected count; a zero ServingMultiplier means 1 (older records never had
// the field).
type FoodItem struct {
	Name              string  `json:"name"`
	EstimatedQuantity string  `json:"estimated_quantity,omitempty"`
	Calories          float64 `json:"calories"`
	Protein           float64 `json:"protein"`
	Carbs             float64 `json:"carbs"`
	Fat               float64 `json:"fat"`
	Fiber             float64 `json:"fiber"`
	Sugar             float64 `json:"sugar"`
	Confidence        string  `json:"confidence,omitempty"`
	ServingMultiplier float64 `json:"servingMultiplier,omitempty"`
}

// Multiplier treats an absent serving multiplier as 1.
func (f FoodItem) Multiplier() float64 {
	if f.ServingMultiplier == 0 {
		return 1
	}
	return f.ServingMultiplier
}

// MealAnalysis is the aggregate for one logged meal, in the wire shape the
// model returns. Totals are derived from the foods list, never authoritative
// on their own.
type MealAnalysis struct {
	Foods         []FoodItem `json:"foods"`
	TotalCalories float64    `json:"total_calories"`
	TotalProtein  float64    `json:"total_protein"`
	TotalCarbs    float64    `json:"total_carbs"`
	TotalFat      float64    `json:"total_fat"`
	TotalFiber    float64    `json:"total_fiber"`
	TotalSugar    float64    `json:"total_sugar"`
	MealType      string     `json:"meal_type,omitempty"`
	MealTitle     string     `json:"meal_title,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// Totals is one set of meal-level macro sums.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}
